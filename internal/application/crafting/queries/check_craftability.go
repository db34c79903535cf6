package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/craftreq/internal/adapters/metrics"
	"github.com/andrescamacho/craftreq/internal/application/logging"
	"github.com/andrescamacho/craftreq/internal/application/mediator"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
	"github.com/andrescamacho/craftreq/internal/domain/evaluation"
	"github.com/andrescamacho/craftreq/internal/domain/inventory"
)

// CheckCraftabilityQuery asks whether an inventory satisfies a declaration
type CheckCraftabilityQuery struct {
	DeclarationID string
	InventoryID   string
	// Batch multiplies component counts; 0 selects the handler default.
	// Values outside 1..crafting.MaxBatch are rejected.
	Batch int
}

// CheckCraftabilityResponse carries the verdict and everything needed to explain it
type CheckCraftabilityResponse struct {
	DeclarationID string
	InventoryID   string
	Batch         int
	CanCraft      bool
	Evaluation    *crafting.Evaluation
	Missing       []crafting.MissingGroup
	Downgrades    []crafting.Downgrade
	Set           *crafting.RequirementSet
}

// CheckCraftabilityHandler handles the CheckCraftability query
type CheckCraftabilityHandler struct {
	declarations crafting.DeclarationRepository
	inventories  inventory.Repository
	evaluations  evaluation.Repository
	engine       *crafting.Engine
	defaultBatch int
}

// NewCheckCraftabilityHandler creates a new CheckCraftabilityHandler.
// evaluations may be nil to skip the audit log.
func NewCheckCraftabilityHandler(
	declarations crafting.DeclarationRepository,
	inventories inventory.Repository,
	evaluations evaluation.Repository,
	engine *crafting.Engine,
	defaultBatch int,
) *CheckCraftabilityHandler {
	if defaultBatch < 1 {
		defaultBatch = 1
	}
	return &CheckCraftabilityHandler{
		declarations: declarations,
		inventories:  inventories,
		evaluations:  evaluations,
		engine:       engine,
		defaultBatch: defaultBatch,
	}
}

// Handle executes the CheckCraftability query
func (h *CheckCraftabilityHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*CheckCraftabilityQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CheckCraftabilityQuery")
	}
	if query.DeclarationID == "" || query.InventoryID == "" {
		return nil, fmt.Errorf("declaration_id and inventory_id must be provided")
	}

	logger := logging.LoggerFromContext(ctx)

	batch := query.Batch
	if batch == 0 {
		batch = h.defaultBatch
	}
	if err := crafting.CheckBatch(batch); err != nil {
		return nil, err
	}

	decl, err := h.declarations.FindByID(ctx, query.DeclarationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find declaration: %w", err)
	}

	snapshot, err := h.inventories.Load(ctx, query.InventoryID, h.engine.Catalog())
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	eval := h.engine.Evaluate(decl.Set, snapshot, batch)
	response := &CheckCraftabilityResponse{
		DeclarationID: decl.ID,
		InventoryID:   query.InventoryID,
		Batch:         eval.Batch(),
		CanCraft:      eval.CanCraft(),
		Evaluation:    eval,
		Missing:       h.engine.MissingReport(decl.Set, eval),
		Downgrades:    eval.Downgrades(),
		Set:           decl.Set,
	}

	for _, d := range response.Downgrades {
		logger.Log("DEBUG", "component contended", map[string]interface{}{
			"declaration": decl.ID,
			"item":        d.ItemType,
			"reason":      string(d.Reason),
			"against":     d.Against,
			"demand":      d.Demand,
		})
	}
	logger.Log("INFO", "craftability evaluated", map[string]interface{}{
		"declaration":    decl.ID,
		"inventory":      query.InventoryID,
		"batch":          response.Batch,
		"can_craft":      response.CanCraft,
		"missing_groups": len(response.Missing),
	})

	metrics.RecordCraftability(response.CanCraft, response.Downgrades)

	if h.evaluations != nil {
		record := &evaluation.Record{
			Kind:          evaluation.KindCraftability,
			DeclarationID: decl.ID,
			SubjectID:     query.InventoryID,
			Batch:         response.Batch,
			Verdict:       response.CanCraft,
			Downgrades:    len(response.Downgrades),
		}
		if err := h.evaluations.Append(ctx, record); err != nil {
			logger.Log("WARN", "failed to record evaluation", map[string]interface{}{
				"declaration": decl.ID,
				"error":       err.Error(),
			})
		}
	}

	return response, nil
}
