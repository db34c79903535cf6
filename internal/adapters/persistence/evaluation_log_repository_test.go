package persistence_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/adapters/persistence"
	"github.com/andrescamacho/craftreq/internal/domain/evaluation"
	"github.com/andrescamacho/craftreq/internal/domain/shared"
	"github.com/andrescamacho/craftreq/test/helpers"
)

func TestEvaluationLogRepository_AppendAndList(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := persistence.NewGormEvaluationLogRepository(db, clock)
	ctx := context.Background()

	first := &evaluation.Record{Kind: evaluation.KindCraftability, DeclarationID: "bookshelf", SubjectID: "workshop", Batch: 1, Verdict: false, Downgrades: 1}
	require.NoError(t, repo.Append(ctx, first))
	clock.Advance(time.Minute)
	second := &evaluation.Record{Kind: evaluation.KindSuccess, DeclarationID: "bookshelf", SubjectID: "player", Verdict: true, Probability: 0.5}
	require.NoError(t, repo.Append(ctx, second))
	require.NoError(t, repo.Append(ctx, &evaluation.Record{Kind: evaluation.KindSuccess, DeclarationID: "chair", SubjectID: "player"}))

	// Act
	records, err := repo.ListByDeclaration(ctx, "bookshelf", 0)
	latest, err2 := repo.ListByDeclaration(ctx, "bookshelf", 1)

	// Assert
	require.NoError(t, err)
	require.NoError(t, err2)
	require.Len(t, records, 2)
	assert.Equal(t, second.ID, records[0].ID, "newest first")
	assert.InDelta(t, 0.5, records[0].Probability, 1e-9)
	assert.Equal(t, 1, records[1].Downgrades)
	assert.True(t, strings.HasPrefix(first.ID, "craftability-bookshelf-"))
	require.Len(t, latest, 1)
	assert.Equal(t, second.ID, latest[0].ID)
}
