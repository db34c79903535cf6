package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/craftreq/internal/adapters/declarations"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
	"github.com/andrescamacho/craftreq/internal/domain/shared"
)

// GormDeclarationRepository implements crafting.DeclarationRepository using GORM.
// Sets are stored in the current declaration format and decoded on read.
type GormDeclarationRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormDeclarationRepository creates a new GORM declaration repository
func NewGormDeclarationRepository(db *gorm.DB, clock shared.Clock) *GormDeclarationRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormDeclarationRepository{db: db, clock: clock}
}

// Save inserts or replaces a declaration
func (r *GormDeclarationRepository) Save(ctx context.Context, decl crafting.Declaration) error {
	doc, err := json.Marshal(declarations.Encode(decl.ID, decl.Name, decl.Set))
	if err != nil {
		return fmt.Errorf("failed to encode declaration %s: %w", decl.ID, err)
	}

	model := &DeclarationModel{
		ID:        decl.ID,
		Name:      decl.Name,
		Document:  string(doc),
		UpdatedAt: r.clock.Now(),
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "document", "updated_at"}),
		}).
		Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save declaration: %w", result.Error)
	}
	return nil
}

// FindByID retrieves a declaration by id
func (r *GormDeclarationRepository) FindByID(ctx context.Context, id string) (*crafting.Declaration, error) {
	var model DeclarationModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &crafting.ErrDeclarationNotFound{ID: id}
		}
		return nil, fmt.Errorf("failed to find declaration: %w", result.Error)
	}

	decl, err := r.modelToEntity(&model)
	if err != nil {
		return nil, err
	}
	return &decl, nil
}

// List returns every stored declaration ordered by id
func (r *GormDeclarationRepository) List(ctx context.Context) ([]crafting.Declaration, error) {
	var models []DeclarationModel
	result := r.db.WithContext(ctx).Order("id").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list declarations: %w", result.Error)
	}

	decls := make([]crafting.Declaration, 0, len(models))
	for i := range models {
		decl, err := r.modelToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// Delete removes a declaration; deleting an unknown id is not an error
func (r *GormDeclarationRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&DeclarationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete declaration: %w", result.Error)
	}
	return nil
}

func (r *GormDeclarationRepository) modelToEntity(model *DeclarationModel) (crafting.Declaration, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(model.Document), &doc); err != nil {
		return crafting.Declaration{}, fmt.Errorf("failed to unmarshal declaration %s: %w", model.ID, err)
	}

	decl, err := declarations.Normalize(doc)
	if err != nil {
		return crafting.Declaration{}, fmt.Errorf("stored declaration %s is invalid: %w", model.ID, err)
	}
	return decl.Declaration, nil
}
