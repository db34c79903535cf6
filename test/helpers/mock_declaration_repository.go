package helpers

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

// MockDeclarationRepository is a test double for crafting.DeclarationRepository
type MockDeclarationRepository struct {
	mu           sync.RWMutex
	declarations map[string]crafting.Declaration

	// SaveErr, when set, is returned by Save
	SaveErr error
}

// NewMockDeclarationRepository creates a new mock declaration repository
func NewMockDeclarationRepository(decls ...crafting.Declaration) *MockDeclarationRepository {
	m := &MockDeclarationRepository{declarations: make(map[string]crafting.Declaration)}
	for _, d := range decls {
		m.declarations[d.ID] = d
	}
	return m
}

func (m *MockDeclarationRepository) Save(ctx context.Context, decl crafting.Declaration) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.declarations[decl.ID] = decl
	return nil
}

func (m *MockDeclarationRepository) FindByID(ctx context.Context, id string) (*crafting.Declaration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.declarations[id]
	if !ok {
		return nil, &crafting.ErrDeclarationNotFound{ID: id}
	}
	return &d, nil
}

func (m *MockDeclarationRepository) List(ctx context.Context) ([]crafting.Declaration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]crafting.Declaration, 0, len(m.declarations))
	for _, d := range m.declarations {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockDeclarationRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.declarations, id)
	return nil
}
