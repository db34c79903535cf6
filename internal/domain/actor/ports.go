package actor

import "context"

// Repository defines actor persistence operations
type Repository interface {
	Save(ctx context.Context, actor *Actor) error
	FindByID(ctx context.Context, id string) (*Actor, error)
}
