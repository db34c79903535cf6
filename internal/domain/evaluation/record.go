package evaluation

import (
	"context"
	"time"
)

// Kind distinguishes the question an evaluation answered
type Kind string

const (
	KindCraftability Kind = "craftability"
	KindSuccess      Kind = "success"
)

// Record is one audited evaluation
type Record struct {
	ID            string
	Kind          Kind
	DeclarationID string
	// SubjectID is the inventory id for craftability checks and the actor id for success estimates
	SubjectID   string
	Batch       int
	Verdict     bool
	Probability float64
	Downgrades  int
	CreatedAt   time.Time
}

// Repository appends and queries the evaluation audit log
type Repository interface {
	Append(ctx context.Context, record *Record) error
	ListByDeclaration(ctx context.Context, declarationID string, limit int) ([]Record, error)
}
