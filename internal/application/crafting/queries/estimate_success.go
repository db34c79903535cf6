package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/craftreq/internal/adapters/metrics"
	"github.com/andrescamacho/craftreq/internal/application/logging"
	"github.com/andrescamacho/craftreq/internal/application/mediator"
	"github.com/andrescamacho/craftreq/internal/domain/actor"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
	"github.com/andrescamacho/craftreq/internal/domain/evaluation"
)

// EstimateSuccessQuery asks how likely an actor is to succeed at a declared action
type EstimateSuccessQuery struct {
	DeclarationID string
	ActorID       string
	// DifficultyModifier overrides the handler default when set
	DifficultyModifier *float64
}

// EstimateSuccessResponse reports the skill gate and success probability separately
type EstimateSuccessResponse struct {
	DeclarationID string
	ActorID       string
	GateMet       bool
	Probability   float64
	Skills        []crafting.SkillAssessment
	Unmet         []crafting.SkillRequirement
}

// EstimateSuccessHandler handles the EstimateSuccess query
type EstimateSuccessHandler struct {
	declarations    crafting.DeclarationRepository
	actors          actor.Repository
	evaluations     evaluation.Repository
	engine          *crafting.Engine
	defaultModifier float64
}

// NewEstimateSuccessHandler creates a new EstimateSuccessHandler
func NewEstimateSuccessHandler(
	declarations crafting.DeclarationRepository,
	actors actor.Repository,
	evaluations evaluation.Repository,
	engine *crafting.Engine,
	defaultModifier float64,
) *EstimateSuccessHandler {
	return &EstimateSuccessHandler{
		declarations:    declarations,
		actors:          actors,
		evaluations:     evaluations,
		engine:          engine,
		defaultModifier: defaultModifier,
	}
}

// Handle executes the EstimateSuccess query
func (h *EstimateSuccessHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*EstimateSuccessQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EstimateSuccessQuery")
	}
	if query.DeclarationID == "" || query.ActorID == "" {
		return nil, fmt.Errorf("declaration_id and actor_id must be provided")
	}

	logger := logging.LoggerFromContext(ctx)

	decl, err := h.declarations.FindByID(ctx, query.DeclarationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find declaration: %w", err)
	}

	a, err := h.actors.FindByID(ctx, query.ActorID)
	if err != nil {
		return nil, fmt.Errorf("failed to find actor: %w", err)
	}

	modifier := h.defaultModifier
	if query.DifficultyModifier != nil {
		modifier = *query.DifficultyModifier
	}

	response := &EstimateSuccessResponse{
		DeclarationID: decl.ID,
		ActorID:       a.ID(),
		GateMet:       h.engine.MeetsSkillGate(decl.Set, a),
		Probability:   h.engine.SuccessProbability(decl.Set, a, modifier),
		Skills:        crafting.AssessSkills(decl.Set, a, modifier),
		Unmet:         crafting.UnmetSkills(decl.Set, a),
	}

	logger.Log("INFO", "success estimated", map[string]interface{}{
		"declaration": decl.ID,
		"actor":       a.ID(),
		"gate_met":    response.GateMet,
		"probability": response.Probability,
	})

	metrics.RecordSuccessEstimate(response.GateMet, response.Probability)

	if h.evaluations != nil {
		record := &evaluation.Record{
			Kind:          evaluation.KindSuccess,
			DeclarationID: decl.ID,
			SubjectID:     a.ID(),
			Verdict:       response.GateMet,
			Probability:   response.Probability,
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
