package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/craftreq/internal/adapters/metrics"
	"github.com/andrescamacho/craftreq/internal/application/logging"
	"github.com/andrescamacho/craftreq/internal/application/mediator"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

// ValidateDeclarationsQuery checks stored declarations against the catalog.
// An empty DeclarationIDs validates every stored declaration.
type ValidateDeclarationsQuery struct {
	DeclarationIDs []string
}

// DeclarationDiagnostics groups the findings of one declaration
type DeclarationDiagnostics struct {
	DeclarationID string
	Diagnostics   []crafting.Diagnostic
}

// ValidateDeclarationsResponse lists only declarations with findings
type ValidateDeclarationsResponse struct {
	Checked int
	Reports []DeclarationDiagnostics
}

// ValidateDeclarationsHandler handles the ValidateDeclarations query
type ValidateDeclarationsHandler struct {
	declarations crafting.DeclarationRepository
	engine       *crafting.Engine
}

// NewValidateDeclarationsHandler creates a new ValidateDeclarationsHandler
func NewValidateDeclarationsHandler(declarations crafting.DeclarationRepository, engine *crafting.Engine) *ValidateDeclarationsHandler {
	return &ValidateDeclarationsHandler{declarations: declarations, engine: engine}
}

// Handle executes the ValidateDeclarations query
func (h *ValidateDeclarationsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ValidateDeclarationsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ValidateDeclarationsQuery")
	}

	logger := logging.LoggerFromContext(ctx)

	var decls []crafting.Declaration
	if len(query.DeclarationIDs) == 0 {
		all, err := h.declarations.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list declarations: %w", err)
		}
		decls = all
	} else {
		for _, id := range query.DeclarationIDs {
			decl, err := h.declarations.FindByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to find declaration: %w", err)
			}
			decls = append(decls, *decl)
		}
	}

	response := &ValidateDeclarationsResponse{Checked: len(decls)}
	for _, decl := range decls {
		diags := h.engine.Validate(decl.Set)
		if len(diags) == 0 {
			continue
		}
		for _, d := range diags {
			logger.Log("WARN", d.Message, map[string]interface{}{
				"declaration": decl.ID,
				"category":    string(d.Category),
				"group":       d.Group,
				"suggestion":  d.Suggestion,
			})
		}
		metrics.RecordDiagnostics(diags)
		response.Reports = append(response.Reports, DeclarationDiagnostics{
			DeclarationID: decl.ID,
			Diagnostics:   diags,
		})
	}

	return response, nil
}
