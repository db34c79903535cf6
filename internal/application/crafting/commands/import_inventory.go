package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/craftreq/internal/application/logging"
	"github.com/andrescamacho/craftreq/internal/application/mediator"
	"github.com/andrescamacho/craftreq/internal/domain/inventory"
)

// ImportInventoryCommand replaces the stacks held by an inventory
type ImportInventoryCommand struct {
	InventoryID string
	Stacks      []inventory.Stack
}

// ImportInventoryResponse reports the merged stacks that were stored
type ImportInventoryResponse struct {
	InventoryID string
	Stacks      []inventory.Stack
}

// ImportInventoryHandler handles the ImportInventory command
type ImportInventoryHandler struct {
	repo inventory.Repository
}

// NewImportInventoryHandler creates a new ImportInventoryHandler
func NewImportInventoryHandler(repo inventory.Repository) *ImportInventoryHandler {
	return &ImportInventoryHandler{repo: repo}
}

// Handle executes the ImportInventory command
func (h *ImportInventoryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportInventoryCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportInventoryCommand")
	}
	if cmd.InventoryID == "" {
		return nil, fmt.Errorf("inventory_id must be provided")
	}

	// Merges duplicate item types and rejects invalid stacks before anything is stored
	snapshot, err := inventory.NewSnapshot(nil, cmd.Stacks...)
	if err != nil {
		return nil, fmt.Errorf("invalid inventory: %w", err)
	}
	stacks := snapshot.Stacks()

	if err := h.repo.Save(ctx, cmd.InventoryID, stacks); err != nil {
		return nil, fmt.Errorf("failed to save inventory: %w", err)
	}

	logging.LoggerFromContext(ctx).Log("INFO", "inventory imported", map[string]interface{}{
		"inventory": cmd.InventoryID,
		"stacks":    len(stacks),
	})

	return &ImportInventoryResponse{InventoryID: cmd.InventoryID, Stacks: stacks}, nil
}
