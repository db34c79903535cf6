package catalog

import "fmt"

// Domain errors for catalog construction

// ErrDuplicateEntry indicates the same id was registered twice during the load phase
type ErrDuplicateEntry struct {
	Kind string // "quality" or "item"
	ID   string
}

func (e *ErrDuplicateEntry) Error() string {
	return fmt.Sprintf("duplicate %s id: %s", e.Kind, e.ID)
}

// ErrInvalidEntry indicates an entry that cannot be registered (empty id, negative level)
type ErrInvalidEntry struct {
	Kind   string
	ID     string
	Reason string
}

func (e *ErrInvalidEntry) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.ID, e.Reason)
}

// ErrBuilderSealed indicates a write after Build was called
type ErrBuilderSealed struct{}

func (e *ErrBuilderSealed) Error() string {
	return "catalog builder already sealed"
}
