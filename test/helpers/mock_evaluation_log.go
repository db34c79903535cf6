package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/craftreq/internal/domain/evaluation"
)

// MockEvaluationLog is an in-memory evaluation.Repository that keeps records in append order
type MockEvaluationLog struct {
	mu      sync.Mutex
	Records []evaluation.Record
}

// NewMockEvaluationLog creates an empty evaluation log
func NewMockEvaluationLog() *MockEvaluationLog {
	return &MockEvaluationLog{}
}

func (m *MockEvaluationLog) Append(ctx context.Context, record *evaluation.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, *record)
	return nil
}

// ListByDeclaration returns the newest records first
func (m *MockEvaluationLog) ListByDeclaration(ctx context.Context, declarationID string, limit int) ([]evaluation.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []evaluation.Record
	for i := len(m.Records) - 1; i >= 0; i-- {
		if m.Records[i].DeclarationID != declarationID {
			continue
		}
		out = append(out, m.Records[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
