package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/craftreq/internal/domain/evaluation"
	"github.com/andrescamacho/craftreq/internal/domain/shared"
	"github.com/andrescamacho/craftreq/pkg/utils"
)

// GormEvaluationLogRepository implements evaluation.Repository using GORM
type GormEvaluationLogRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormEvaluationLogRepository creates a new evaluation log repository.
// If clock is nil, uses RealClock.
func NewGormEvaluationLogRepository(db *gorm.DB, clock shared.Clock) *GormEvaluationLogRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormEvaluationLogRepository{db: db, clock: clock}
}

// Append stores a record, assigning its id and timestamp when unset
func (r *GormEvaluationLogRepository) Append(ctx context.Context, record *evaluation.Record) error {
	if record.ID == "" {
		record.ID = utils.GenerateEvaluationID(string(record.Kind), record.DeclarationID)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.clock.Now()
	}

	model := &EvaluationLogModel{
		ID:            record.ID,
		Kind:          string(record.Kind),
		DeclarationID: record.DeclarationID,
		SubjectID:     record.SubjectID,
		Batch:         record.Batch,
		Verdict:       record.Verdict,
		Probability:   record.Probability,
		Downgrades:    record.Downgrades,
		CreatedAt:     record.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append evaluation log: %w", err)
	}
	return nil
}

// ListByDeclaration returns the newest records first. A limit of 0 returns all.
func (r *GormEvaluationLogRepository) ListByDeclaration(ctx context.Context, declarationID string, limit int) ([]evaluation.Record, error) {
	query := r.db.WithContext(ctx).
		Where("declaration_id = ?", declarationID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []EvaluationLogModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list evaluation logs: %w", err)
	}

	records := make([]evaluation.Record, 0, len(models))
	for _, m := range models {
		records = append(records, evaluation.Record{
			ID:            m.ID,
			Kind:          evaluation.Kind(m.Kind),
			DeclarationID: m.DeclarationID,
			SubjectID:     m.SubjectID,
			Batch:         m.Batch,
			Verdict:       m.Verdict,
			Probability:   m.Probability,
			Downgrades:    m.Downgrades,
			CreatedAt:     m.CreatedAt,
		})
	}
	return records, nil
}
