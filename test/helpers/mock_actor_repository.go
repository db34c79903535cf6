package helpers

import (
	"context"
	"fmt"
	"sync"

	"github.com/andrescamacho/craftreq/internal/domain/actor"
)

// MockActorRepository is a test double for actor.Repository
type MockActorRepository struct {
	mu     sync.RWMutex
	actors map[string]*actor.Actor
}

// NewMockActorRepository creates a new mock actor repository
func NewMockActorRepository(actors ...*actor.Actor) *MockActorRepository {
	m := &MockActorRepository{actors: make(map[string]*actor.Actor)}
	for _, a := range actors {
		m.actors[a.ID()] = a
	}
	return m
}

func (m *MockActorRepository) Save(ctx context.Context, a *actor.Actor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actors[a.ID()] = a
	return nil
}

func (m *MockActorRepository) FindByID(ctx context.Context, id string) (*actor.Actor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.actors[id]
	if !ok {
		return nil, fmt.Errorf("actor not found: %s", id)
	}
	return a, nil
}
