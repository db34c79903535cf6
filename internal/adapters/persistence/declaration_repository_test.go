package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/adapters/persistence"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
	"github.com/andrescamacho/craftreq/test/helpers"
)

func TestDeclarationRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormDeclarationRepository(db, nil)
	decl := helpers.BookshelfDeclaration(t)

	// Act
	require.NoError(t, repo.Save(context.Background(), decl))
	found, err := repo.FindByID(context.Background(), decl.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, decl.Name, found.Name)
	assert.Equal(t, decl.Set, found.Set)
}

func TestDeclarationRepository_ListAndDelete(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormDeclarationRepository(db, nil)
	ctx := context.Background()

	shelf := helpers.BookshelfDeclaration(t)
	empty, err := crafting.NewRequirementSet(nil, nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, shelf))
	require.NoError(t, repo.Save(ctx, crafting.Declaration{ID: "air", Set: empty}))

	// Act
	listed, err := repo.List(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "air"))
	remaining, err := repo.List(ctx)
	require.NoError(t, err)

	// Assert
	require.Len(t, listed, 2)
	assert.Equal(t, "air", listed[0].ID)
	assert.True(t, listed[0].Set.IsEmpty())
	require.Len(t, remaining, 1)
	assert.Equal(t, shelf.ID, remaining[0].ID)
}

func TestDeclarationRepository_SaveReplaces(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormDeclarationRepository(db, nil)
	ctx := context.Background()

	decl := helpers.BookshelfDeclaration(t)
	require.NoError(t, repo.Save(ctx, decl))

	trimmed, discarded := decl.Set.RemoveItem("log")
	require.False(t, discarded)
	decl.Set = trimmed
	require.NoError(t, repo.Save(ctx, decl))

	found, err := repo.FindByID(ctx, decl.ID)
	require.NoError(t, err)
	assert.Len(t, found.Set.Components()[0], 1)
}

func TestDeclarationRepository_NotFound(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormDeclarationRepository(db, nil)

	_, err := repo.FindByID(context.Background(), "missing")

	var notFound *crafting.ErrDeclarationNotFound
	assert.True(t, errors.As(err, &notFound))
}
