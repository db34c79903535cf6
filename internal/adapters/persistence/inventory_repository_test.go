package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/adapters/persistence"
	"github.com/andrescamacho/craftreq/internal/domain/inventory"
	"github.com/andrescamacho/craftreq/internal/domain/shared"
	"github.com/andrescamacho/craftreq/test/helpers"
)

func TestInventoryRepository_SaveAndLoad(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormInventoryRepository(db, shared.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	cat := helpers.WorkshopCatalog(t)

	// Act
	err := repo.Save(context.Background(), "workshop", []inventory.Stack{
		{Type: "plank", Units: 3},
		{Type: "plank", Units: 2},
		{Type: "welder", Units: 1, Charges: 40},
		{Type: "knife", Units: 1},
	})
	require.NoError(t, err)
	snap, err := repo.Load(context.Background(), "workshop", cat)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Units("plank"))
	assert.Equal(t, 40, snap.Charges("welder"))
	assert.True(t, snap.HasQuality("CUT", 2, 1))
}

func TestInventoryRepository_SaveReplacesStacks(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormInventoryRepository(db, nil)
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, "workshop", []inventory.Stack{{Type: "plank", Units: 3}}))

	// Act
	require.NoError(t, repo.Save(ctx, "workshop", []inventory.Stack{{Type: "nail", Units: 10}}))
	snap, err := repo.Load(ctx, "workshop", nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, snap.Units("plank"))
	assert.Equal(t, 10, snap.Units("nail"))
}

func TestInventoryRepository_UnknownInventoryIsEmpty(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormInventoryRepository(db, nil)

	snap, err := repo.Load(context.Background(), "nowhere", nil)

	require.NoError(t, err)
	assert.True(t, snap.IsEmpty())
}

func TestInventoryRepository_RejectsEmptyID(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormInventoryRepository(db, nil)

	err := repo.Save(context.Background(), "", nil)

	assert.Error(t, err)
}
