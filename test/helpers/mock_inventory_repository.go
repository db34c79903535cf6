package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/craftreq/internal/domain/inventory"
)

// MockInventoryRepository is a test double for inventory.Repository
type MockInventoryRepository struct {
	mu     sync.RWMutex
	stacks map[string][]inventory.Stack
}

// NewMockInventoryRepository creates a new mock inventory repository
func NewMockInventoryRepository() *MockInventoryRepository {
	return &MockInventoryRepository{stacks: make(map[string][]inventory.Stack)}
}

func (m *MockInventoryRepository) Save(ctx context.Context, inventoryID string, stacks []inventory.Stack) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stacks[inventoryID] = append([]inventory.Stack(nil), stacks...)
	return nil
}

// Load returns an empty snapshot for unknown inventories
func (m *MockInventoryRepository) Load(ctx context.Context, inventoryID string, qualities inventory.QualitySource) (*inventory.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return inventory.NewSnapshot(qualities, m.stacks[inventoryID]...)
}
