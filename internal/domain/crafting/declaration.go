package crafting

import (
	"context"
	"fmt"
)

// Declaration is a named requirement set, e.g. one recipe or construction
type Declaration struct {
	ID   string
	Name string
	Set  *RequirementSet
}

// DeclarationRepository defines persistence of normalised declarations
type DeclarationRepository interface {
	Save(ctx context.Context, decl Declaration) error
	FindByID(ctx context.Context, id string) (*Declaration, error)
	List(ctx context.Context) ([]Declaration, error)
	Delete(ctx context.Context, id string) error
}

// ErrDeclarationNotFound indicates no declaration is stored under the id
type ErrDeclarationNotFound struct {
	ID string
}

func (e *ErrDeclarationNotFound) Error() string {
	return fmt.Sprintf("declaration not found: %s", e.ID)
}
