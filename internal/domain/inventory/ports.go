package inventory

import "context"

// Repository defines inventory persistence operations
type Repository interface {
	// Save replaces the stacks held by the inventory
	Save(ctx context.Context, inventoryID string, stacks []Stack) error

	// Load builds a snapshot of the inventory, resolving qualities through the source
	Load(ctx context.Context, inventoryID string, qualities QualitySource) (*Snapshot, error)
}
