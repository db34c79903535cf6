package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/craftreq/internal/application/mediator"
	"github.com/andrescamacho/craftreq/internal/domain/evaluation"
)

// ListEvaluationsQuery reads the audit log of one declaration, newest first
type ListEvaluationsQuery struct {
	DeclarationID string
	Limit         int
}

// ListEvaluationsResponse holds the audit records
type ListEvaluationsResponse struct {
	Records []evaluation.Record
}

// ListEvaluationsHandler handles the ListEvaluations query
type ListEvaluationsHandler struct {
	evaluations evaluation.Repository
}

// NewListEvaluationsHandler creates a new ListEvaluationsHandler
func NewListEvaluationsHandler(evaluations evaluation.Repository) *ListEvaluationsHandler {
	return &ListEvaluationsHandler{evaluations: evaluations}
}

// Handle executes the ListEvaluations query
func (h *ListEvaluationsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListEvaluationsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListEvaluationsQuery")
	}
	if query.DeclarationID == "" {
		return nil, fmt.Errorf("declaration_id must be provided")
	}
	if query.Limit < 0 {
		return nil, fmt.Errorf("limit cannot be negative")
	}

	records, err := h.evaluations.ListByDeclaration(ctx, query.DeclarationID, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	return &ListEvaluationsResponse{Records: records}, nil
}
