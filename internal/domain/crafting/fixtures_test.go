package crafting_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/domain/actor"
	"github.com/andrescamacho/craftreq/internal/domain/catalog"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
	"github.com/andrescamacho/craftreq/internal/domain/inventory"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	b := catalog.NewBuilder()
	require.NoError(t, b.AddQuality(catalog.Quality{ID: "CUT", Name: "cutting"}))
	require.NoError(t, b.AddQuality(catalog.Quality{ID: "HAMMER", Name: "hammering"}))
	for _, it := range []catalog.ItemType{
		{ID: "knife", Name: "knife", Qualities: []catalog.QualityLevel{{Quality: "CUT", Level: 2}}},
		{ID: "rock", Name: "rock", Qualities: []catalog.QualityLevel{{Quality: "HAMMER", Level: 1}}},
		{ID: "hammer", Name: "hammer", Qualities: []catalog.QualityLevel{{Quality: "HAMMER", Level: 3}}},
		{ID: "plank", Name: "plank"},
		{ID: "nail", Name: "nail"},
		{ID: "welder", Name: "welder"},
		{ID: "thread", Name: "thread"},
	} {
		require.NoError(t, b.AddItemType(it))
	}
	return b.Build()
}

func snapshot(t *testing.T, cat *catalog.Catalog, stacks ...inventory.Stack) *inventory.Snapshot {
	t.Helper()
	snap, err := inventory.NewSnapshot(cat, stacks...)
	require.NoError(t, err)
	return snap
}

func units(itemType string, n int) inventory.Stack {
	return inventory.Stack{Type: itemType, Units: n}
}

func mustSet(
	t *testing.T,
	components []crafting.ComponentGroup,
	tools []crafting.ComponentGroup,
	qualities []crafting.QualityGroup,
	skills ...crafting.SkillRequirement,
) *crafting.RequirementSet {
	t.Helper()
	set, err := crafting.NewRequirementSet(components, tools, qualities, skills)
	require.NoError(t, err)
	return set
}

func testActor(t *testing.T, intelligence int, skills map[string]int) *actor.Actor {
	t.Helper()
	a, err := actor.NewActor("tester", "Tester")
	require.NoError(t, err)
	a.SetStat(actor.StatIntelligence, intelligence)
	for skill, level := range skills {
		require.NoError(t, a.SetSkill(skill, level, 0))
	}
	return a
}

// recordingInventory counts queries so tests can assert nothing is short-circuited
type recordingInventory struct {
	crafting.Inventory
	itemQueries    map[string]int
	chargeQueries  map[string]int
	qualityQueries map[string]int
}

func newRecordingInventory(inner crafting.Inventory) *recordingInventory {
	return &recordingInventory{
		Inventory:      inner,
		itemQueries:    make(map[string]int),
		chargeQueries:  make(map[string]int),
		qualityQueries: make(map[string]int),
	}
}

func (r *recordingInventory) HasItem(itemType string, quantity int) bool {
	r.itemQueries[itemType]++
	return r.Inventory.HasItem(itemType, quantity)
}

func (r *recordingInventory) HasCharges(itemType string, charges int) bool {
	r.chargeQueries[itemType]++
	return r.Inventory.HasCharges(itemType, charges)
}

func (r *recordingInventory) HasQuality(quality string, level int, quantity int) bool {
	r.qualityQueries[quality]++
	return r.Inventory.HasQuality(quality, level, quantity)
}
