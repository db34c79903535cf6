package crafting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/domain/crafting"
	"github.com/andrescamacho/craftreq/internal/domain/inventory"
)

func TestMissingReport_ListsUnsatisfiedGroupsInOrder(t *testing.T) {
	// Arrange
	cat := testCatalog(t)
	engine := crafting.NewEngine(cat)
	set := mustSet(t,
		[]crafting.ComponentGroup{
			{crafting.NewComponent("plank", 4)},
			{crafting.NewComponent("nail", 2)},
		},
		[]crafting.ComponentGroup{
			{crafting.NewChargedTool("welder", 10)},
			{crafting.NewTool("hammer")},
		},
		[]crafting.QualityGroup{{crafting.NewQualityRequirement("CUT", 2)}},
	)
	inv := snapshot(t, cat, units("plank", 1), units("nail", 2), units("hammer", 1))

	// Act
	eval := engine.Evaluate(set, inv, 2)
	report := engine.MissingReport(set, eval)

	// Assert
	require.Len(t, report, 4)
	assert.Equal(t, crafting.CategoryTools, report[0].Category)
	assert.Equal(t, "welder (20 charges)", report[0].Alternatives[0].Description)
	assert.Equal(t, crafting.CategoryQualities, report[1].Category)
	assert.Equal(t, "tool with cutting of 2 or more", report[1].Alternatives[0].Description)
	assert.Equal(t, crafting.CategoryComponents, report[2].Category)
	assert.Equal(t, 0, report[2].Group)
	assert.Equal(t, "8 plank", report[2].Alternatives[0].Description)
	assert.Equal(t, 1, report[3].Group)
	assert.Equal(t, "4 nail", report[3].Alternatives[0].Description)
	assert.Equal(t, crafting.Unavailable, report[3].Alternatives[0].Availability)
}

func TestMissingReport_IncludesContendedAlternatives(t *testing.T) {
	// Arrange
	cat := testCatalog(t)
	engine := crafting.NewEngine(cat)
	set := mustSet(t,
		[]crafting.ComponentGroup{{crafting.NewComponent("hammer", 1)}},
		[]crafting.ComponentGroup{{crafting.NewTool("hammer")}},
		nil,
	)

	// Act
	eval := engine.Evaluate(set, snapshot(t, cat, units("hammer", 1)), 1)
	report := engine.MissingReport(set, eval)

	// Assert
	require.Len(t, report, 1)
	assert.Equal(t, crafting.CategoryComponents, report[0].Category)
	assert.Equal(t, "hammer", report[0].Alternatives[0].Key)
	assert.Equal(t, crafting.Insufficient, report[0].Alternatives[0].Availability)
}

func TestMissingReport_EmptyWhenCraftable(t *testing.T) {
	cat := testCatalog(t)
	engine := crafting.NewEngine(cat)
	set := mustSet(t, []crafting.ComponentGroup{{crafting.NewComponent("plank", 1)}}, nil, nil)

	eval := engine.Evaluate(set, snapshot(t, cat, units("plank", 1)), 1)

	assert.Empty(t, engine.MissingReport(set, eval))
}

func TestDescribe(t *testing.T) {
	cat := testCatalog(t)

	assert.Equal(t, "hammer", crafting.NewTool("hammer").Describe(cat, 3))
	assert.Equal(t, "welder (1 charge)", crafting.NewChargedTool("welder", 1).Describe(cat, 1))
	assert.Equal(t, "6 nail", crafting.NewComponent("nail", 2).Describe(cat, 3))
	assert.Equal(t, "tool with hammering of 1 or more", crafting.NewQualityRequirement("HAMMER", 1).Describe(cat, 4))
	assert.Equal(t, "level 3 fabrication", crafting.NewSkillRequirement("fabrication", 3).Describe())
}

func TestAlternativeTierOf(t *testing.T) {
	// Arrange
	cat := testCatalog(t)
	set := mustSet(t,
		[]crafting.ComponentGroup{
			{crafting.NewComponent("thread", 1), crafting.NewComponent("plank", 1)},
			{crafting.NewComponent("nail", 1)},
		},
		nil, nil,
	)
	inv := snapshot(t, cat, inventory.Stack{Type: "plank", Units: 1})

	// Act
	eval := crafting.NewEngine(cat).Evaluate(set, inv, 1)

	// Assert
	assert.Equal(t, crafting.AlternativeCovered, crafting.AlternativeTierOf(eval, crafting.CategoryComponents, 0, 0))
	assert.Equal(t, crafting.AlternativeAvailable, crafting.AlternativeTierOf(eval, crafting.CategoryComponents, 0, 1))
	assert.Equal(t, crafting.AlternativeMissing, crafting.AlternativeTierOf(eval, crafting.CategoryComponents, 1, 0))
}
