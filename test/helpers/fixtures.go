package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/domain/actor"
	"github.com/andrescamacho/craftreq/internal/domain/catalog"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

// WorkshopCatalog builds a small catalog of woodworking items and tool qualities
func WorkshopCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	b := catalog.NewBuilder()
	for _, q := range []catalog.Quality{
		{ID: "CUT", Name: "cutting"},
		{ID: "HAMMER", Name: "hammering"},
		{ID: "SAW_W", Name: "wood sawing"},
	} {
		require.NoError(t, b.AddQuality(q))
	}
	for _, it := range []catalog.ItemType{
		{ID: "knife", Name: "pocket knife", Qualities: []catalog.QualityLevel{{Quality: "CUT", Level: 2}}},
		{ID: "hammer", Name: "hammer", Qualities: []catalog.QualityLevel{{Quality: "HAMMER", Level: 3}}},
		{ID: "rock", Name: "rock", Qualities: []catalog.QualityLevel{{Quality: "HAMMER", Level: 1}}},
		{ID: "saw", Name: "wood saw", Qualities: []catalog.QualityLevel{{Quality: "SAW_W", Level: 2}}},
		{ID: "plank", Name: "plank"},
		{ID: "nail", Name: "nail"},
		{ID: "log", Name: "log"},
		{ID: "welder", Name: "welder"},
		{ID: "thread", Name: "thread"},
	} {
		require.NoError(t, b.AddItemType(it))
	}
	return b.Build()
}

// BookshelfDeclaration is a declaration using every requirement category
func BookshelfDeclaration(t *testing.T) crafting.Declaration {
	t.Helper()
	log := crafting.NewComponent("log", 1)
	log.Recoverable = false

	skill := crafting.NewSkillRequirement("fabrication", 3)
	skill.Minimum = 2

	set, err := crafting.NewRequirementSet(
		[]crafting.ComponentGroup{
			{crafting.NewComponent("plank", 4), log},
			{crafting.NewComponent("nail", 8)},
		},
		[]crafting.ComponentGroup{{crafting.NewTool("hammer")}},
		[]crafting.QualityGroup{{crafting.NewQualityRequirement("SAW_W", 1)}},
		[]crafting.SkillRequirement{skill},
	)
	require.NoError(t, err)

	return crafting.Declaration{ID: "bookshelf", Name: "bookshelf", Set: set}
}

// Crafter builds an actor with the given skill levels and default stats
func Crafter(t *testing.T, id string, levels map[string]int) *actor.Actor {
	t.Helper()
	a, err := actor.NewActor(id, id)
	require.NoError(t, err)
	for skill, level := range levels {
		require.NoError(t, a.SetSkill(skill, level, 0))
	}
	return a
}
