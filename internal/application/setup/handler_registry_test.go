package setup_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/adapters/persistence"
	craftingCommands "github.com/andrescamacho/craftreq/internal/application/crafting/commands"
	craftingQueries "github.com/andrescamacho/craftreq/internal/application/crafting/queries"
	"github.com/andrescamacho/craftreq/internal/application/logging"
	"github.com/andrescamacho/craftreq/internal/application/mediator"
	"github.com/andrescamacho/craftreq/internal/application/setup"
	"github.com/andrescamacho/craftreq/internal/domain/actor"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
	"github.com/andrescamacho/craftreq/internal/domain/inventory"
	"github.com/andrescamacho/craftreq/test/helpers"
)

func TestRegisterCraftingHandlers_EndToEnd(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	engine := crafting.NewEngine(helpers.WorkshopCatalog(t))
	registry := setup.NewHandlerRegistry(
		persistence.NewGormDeclarationRepository(db, nil),
		persistence.NewGormInventoryRepository(db, nil),
		persistence.NewGormActorRepository(db, nil),
		persistence.NewGormEvaluationLogRepository(db, nil),
		engine,
	).WithDefaults(1, 0)

	m := mediator.NewMediator()
	m.RegisterMiddleware(logging.Middleware())
	require.NoError(t, registry.RegisterCraftingHandlers(m))

	var logs bytes.Buffer
	ctx := logging.WithLogger(context.Background(), logging.NewStdLogger(&logs, "debug", "text"))

	// Act
	_, err := m.Send(ctx, &craftingCommands.ImportDeclarationsCommand{
		Path: "../../adapters/declarations/testdata/bookshelf.json",
	})
	require.NoError(t, err)
	_, err = m.Send(ctx, &craftingCommands.ImportInventoryCommand{
		InventoryID: "workshop",
		Stacks: []inventory.Stack{
			{Type: "hammer", Units: 1}, {Type: "saw", Units: 1},
			{Type: "plank", Units: 4}, {Type: "nail", Units: 8},
		},
	})
	require.NoError(t, err)
	_, err = m.Send(ctx, &craftingCommands.RegisterActorCommand{
		ID:     "smith",
		Skills: map[string]actor.SkillProgress{"fabrication": {Level: 3}},
	})
	require.NoError(t, err)

	check, err := m.Send(ctx, &craftingQueries.CheckCraftabilityQuery{DeclarationID: "bookshelf", InventoryID: "workshop"})
	require.NoError(t, err)
	chance, err := m.Send(ctx, &craftingQueries.EstimateSuccessQuery{DeclarationID: "bookshelf", ActorID: "smith"})
	require.NoError(t, err)
	history, err := m.Send(ctx, &craftingQueries.ListEvaluationsQuery{DeclarationID: "bookshelf"})
	require.NoError(t, err)

	// Assert
	assert.True(t, check.(*craftingQueries.CheckCraftabilityResponse).CanCraft)
	assert.InDelta(t, 0.5, chance.(*craftingQueries.EstimateSuccessResponse).Probability, 1e-9)
	assert.Len(t, history.(*craftingQueries.ListEvaluationsResponse).Records, 2)
	assert.Contains(t, logs.String(), "request=CheckCraftabilityQuery")
}

func TestRegisterCraftingHandlers_RejectsDoubleRegistration(t *testing.T) {
	registry := setup.NewHandlerRegistry(nil, nil, nil, nil, nil)
	m := mediator.NewMediator()

	require.NoError(t, registry.RegisterCraftingHandlers(m))
	assert.Error(t, registry.RegisterCraftingHandlers(m))
}
