package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/adapters/declarations"
	"github.com/andrescamacho/craftreq/internal/application/crafting/commands"
	"github.com/andrescamacho/craftreq/internal/domain/actor"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
	"github.com/andrescamacho/craftreq/internal/domain/inventory"
	"github.com/andrescamacho/craftreq/test/helpers"
)

func TestImportDeclarations_FromFile(t *testing.T) {
	// Arrange
	repo := helpers.NewMockDeclarationRepository()
	engine := crafting.NewEngine(helpers.WorkshopCatalog(t))
	handler := commands.NewImportDeclarationsHandler(repo, nil, engine)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.ImportDeclarationsCommand{
		Path: "../../../adapters/declarations/testdata/bookshelf.json",
	})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.ImportDeclarationsResponse)
	assert.Equal(t, []string{"bookshelf"}, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "broken", result.Errors[0].DeclarationID)
	assert.NotEmpty(t, result.Digest)

	stored, err := repo.FindByID(context.Background(), "bookshelf")
	require.NoError(t, err)
	assert.Len(t, stored.Set.Components(), 2)
}

func TestImportDeclarations_Blacklist(t *testing.T) {
	// Arrange
	bookshelf := helpers.BookshelfDeclaration(t)
	loader := func(string) (*declarations.Result, error) {
		return &declarations.Result{
			Declarations: []declarations.Declaration{{Declaration: bookshelf, Format: declarations.FormatCurrent}},
		}, nil
	}

	cases := []struct {
		name      string
		blacklist []string
		imported  bool
	}{
		{"removing one alternative keeps the declaration", []string{"log"}, true},
		{"removing a sole alternative discards the declaration", []string{"log", "nail"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := helpers.NewMockDeclarationRepository()
			handler := commands.NewImportDeclarationsHandler(repo, loader, nil)

			// Act
			resp, err := handler.Handle(context.Background(), &commands.ImportDeclarationsCommand{
				Path:      "ignored.yaml",
				Blacklist: tc.blacklist,
			})

			// Assert
			require.NoError(t, err)
			result := resp.(*commands.ImportDeclarationsResponse)
			stored, findErr := repo.FindByID(context.Background(), "bookshelf")
			if tc.imported {
				require.NoError(t, findErr)
				assert.Equal(t, crafting.ComponentGroup{crafting.NewComponent("plank", 4)}, stored.Set.Components()[0])
				assert.Empty(t, result.Discarded)
			} else {
				assert.Error(t, findErr)
				assert.Equal(t, []string{"bookshelf"}, result.Discarded)
			}
		})
	}
}

func TestImportDeclarations_ReportsDiagnostics(t *testing.T) {
	set, err := crafting.NewRequirementSet(nil, nil, []crafting.QualityGroup{{crafting.NewQualityRequirement("CUTT", 1)}}, nil)
	require.NoError(t, err)
	loader := func(string) (*declarations.Result, error) {
		return &declarations.Result{Declarations: []declarations.Declaration{
			{Declaration: crafting.Declaration{ID: "whittle", Set: set}},
		}}, nil
	}
	handler := commands.NewImportDeclarationsHandler(helpers.NewMockDeclarationRepository(), loader,
		crafting.NewEngine(helpers.WorkshopCatalog(t)))

	resp, err := handler.Handle(context.Background(), &commands.ImportDeclarationsCommand{Path: "x"})

	require.NoError(t, err)
	diags := resp.(*commands.ImportDeclarationsResponse).Diagnostics["whittle"]
	require.Len(t, diags, 1)
	assert.Equal(t, "CUT", diags[0].Suggestion)
}

func TestImportDeclarations_Failures(t *testing.T) {
	failing := func(string) (*declarations.Result, error) { return nil, errors.New("no such file") }
	handler := commands.NewImportDeclarationsHandler(helpers.NewMockDeclarationRepository(), failing, nil)

	_, err := handler.Handle(context.Background(), &commands.ImportDeclarationsCommand{})
	assert.Error(t, err)

	_, err = handler.Handle(context.Background(), &commands.ImportDeclarationsCommand{Path: "missing.yaml"})
	assert.ErrorContains(t, err, "no such file")
}

func TestImportInventory_MergesStacks(t *testing.T) {
	// Arrange
	repo := helpers.NewMockInventoryRepository()
	handler := commands.NewImportInventoryHandler(repo)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.ImportInventoryCommand{
		InventoryID: "workshop",
		Stacks: []inventory.Stack{
			{Type: "plank", Units: 2},
			{Type: "welder", Charges: 20},
			{Type: "plank", Units: 3},
		},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []inventory.Stack{
		{Type: "plank", Units: 5},
		{Type: "welder", Charges: 20},
	}, resp.(*commands.ImportInventoryResponse).Stacks)

	snapshot, err := repo.Load(context.Background(), "workshop", nil)
	require.NoError(t, err)
	assert.True(t, snapshot.HasItem("plank", 5))
	assert.True(t, snapshot.HasCharges("welder", 20))
}

func TestImportInventory_RejectsInvalidStacks(t *testing.T) {
	handler := commands.NewImportInventoryHandler(helpers.NewMockInventoryRepository())

	_, err := handler.Handle(context.Background(), &commands.ImportInventoryCommand{
		InventoryID: "workshop",
		Stacks:      []inventory.Stack{{Type: "plank", Units: -1}},
	})
	assert.Error(t, err)

	_, err = handler.Handle(context.Background(), &commands.ImportInventoryCommand{})
	assert.Error(t, err)
}

func TestRegisterActor(t *testing.T) {
	// Arrange
	repo := helpers.NewMockActorRepository()
	handler := commands.NewRegisterActorHandler(repo)

	// Act
	_, err := handler.Handle(context.Background(), &commands.RegisterActorCommand{
		ID:         "smith",
		Name:       "Smith",
		Skills:     map[string]actor.SkillProgress{"fabrication": {Level: 3, Progress: 0.5}},
		Stats:      map[string]int{"dexterity": 12},
		SkillStats: map[string]string{"fabrication": "dexterity"},
	})

	// Assert
	require.NoError(t, err)
	smith, err := repo.FindByID(context.Background(), "smith")
	require.NoError(t, err)
	assert.Equal(t, 3, smith.SkillLevel("fabrication"))
	assert.InDelta(t, 3.5, smith.AdjustedSkillLevel("fabrication"), 1e-9)
	assert.Equal(t, 12, smith.StatFor("fabrication"))
}

func TestRegisterActor_RejectsInvalidSkill(t *testing.T) {
	handler := commands.NewRegisterActorHandler(helpers.NewMockActorRepository())

	_, err := handler.Handle(context.Background(), &commands.RegisterActorCommand{
		ID:     "smith",
		Skills: map[string]actor.SkillProgress{"fabrication": {Level: 1, Progress: 1.5}},
	})
	assert.Error(t, err)
}
