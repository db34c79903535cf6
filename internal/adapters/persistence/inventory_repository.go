package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/craftreq/internal/domain/inventory"
	"github.com/andrescamacho/craftreq/internal/domain/shared"
)

// GormInventoryRepository implements inventory.Repository using GORM
type GormInventoryRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormInventoryRepository creates a new GORM inventory repository.
// If clock is nil, uses RealClock.
func NewGormInventoryRepository(db *gorm.DB, clock shared.Clock) *GormInventoryRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormInventoryRepository{db: db, clock: clock}
}

// Save replaces every stack of the inventory in one transaction
func (r *GormInventoryRepository) Save(ctx context.Context, inventoryID string, stacks []inventory.Stack) error {
	if inventoryID == "" {
		return fmt.Errorf("inventory id cannot be empty")
	}
	now := r.clock.Now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("inventory_id = ?", inventoryID).Delete(&InventoryStackModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear inventory %s: %w", inventoryID, err)
		}

		merged := make(map[string]*InventoryStackModel, len(stacks))
		models := make([]*InventoryStackModel, 0, len(stacks))
		for _, s := range stacks {
			if m, ok := merged[s.Type]; ok {
				m.Units += s.Units
				m.Charges += s.Charges
				continue
			}
			m := &InventoryStackModel{
				InventoryID: inventoryID,
				ItemType:    s.Type,
				Units:       s.Units,
				Charges:     s.Charges,
				UpdatedAt:   now,
			}
			merged[s.Type] = m
			models = append(models, m)
		}
		if len(models) == 0 {
			return nil
		}

		if err := tx.Create(&models).Error; err != nil {
			return fmt.Errorf("failed to save inventory %s: %w", inventoryID, err)
		}
		return nil
	})
}

// Load builds a snapshot of the stored stacks. An unknown inventory is empty.
func (r *GormInventoryRepository) Load(ctx context.Context, inventoryID string, qualities inventory.QualitySource) (*inventory.Snapshot, error) {
	var models []InventoryStackModel
	result := r.db.WithContext(ctx).
		Where("inventory_id = ?", inventoryID).
		Order("item_type").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load inventory %s: %w", inventoryID, result.Error)
	}

	stacks := make([]inventory.Stack, 0, len(models))
	for _, m := range models {
		stacks = append(stacks, inventory.Stack{Type: m.ItemType, Units: m.Units, Charges: m.Charges})
	}
	return inventory.NewSnapshot(qualities, stacks...)
}
