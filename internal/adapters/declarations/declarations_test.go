package declarations_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/adapters/declarations"
	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

func parse(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return doc
}

func TestNormalize_CurrentFormat(t *testing.T) {
	// Arrange
	doc := parse(t, `{
		"id": "shelf",
		"requirements": {
			"components": [[{"item": "plank", "count": 4}, {"item": "log", "count": 1, "recoverable": false}]],
			"tools": [{"item": "welder", "charges": 5}, {"item": "hammer"}],
			"qualities": [{"quality": "CUT", "level": 2}],
			"skills": [{"skill": "fabrication", "difficulty": 3, "base_success": 0.6}]
		}
	}`)

	// Act
	decl, err := declarations.Normalize(doc)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "shelf", decl.ID)
	assert.Equal(t, declarations.FormatCurrent, decl.Format)

	components := decl.Set.Components()
	require.Len(t, components, 1)
	assert.Equal(t, crafting.ComponentGroup{
		{Type: "plank", Count: 4, Recoverable: true},
		{Type: "log", Count: 1, Recoverable: false},
	}, components[0])

	tools := decl.Set.Tools()
	require.Len(t, tools, 2)
	assert.Equal(t, crafting.NewChargedTool("welder", 5), tools[0][0])
	assert.Equal(t, crafting.NewTool("hammer"), tools[1][0])

	assert.Equal(t, crafting.QualityGroup{crafting.NewQualityRequirement("CUT", 2)}, decl.Set.Qualities()[0])

	skill, ok := decl.Set.Skill("fabrication")
	require.True(t, ok)
	assert.Equal(t, 3, skill.Minimum, "minimum defaults to difficulty")
	assert.InDelta(t, 0.6, skill.BaseSuccess, 1e-9)
	assert.InDelta(t, crafting.DefaultStatFactor, skill.StatFactor, 1e-9)
}

func TestNormalize_CurrentFormatErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "missing difficulty",
			doc:   `{"id": "x", "requirements": {"skills": [{"skill": "tailor"}]}}`,
			field: "requirements.skills[0].difficulty",
		},
		{
			name:  "empty group",
			doc:   `{"id": "x", "requirements": {"tools": [[]]}}`,
			field: "requirements.tools[0]",
		},
		{
			name:  "missing item",
			doc:   `{"id": "x", "requirements": {"components": [{"count": 2}]}}`,
			field: "requirements.components[0].item",
		},
		{
			name:  "fractional count",
			doc:   `{"id": "x", "requirements": {"components": [{"item": "plank", "count": 1.5}]}}`,
			field: "requirements.components[0].count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := declarations.Normalize(parse(t, tt.doc))

			var le *declarations.LoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, "x", le.DeclarationID)
			assert.Equal(t, tt.field, le.Field)
		})
	}
}

func TestNormalize_LegacyFormat(t *testing.T) {
	// Arrange
	doc := parse(t, `{
		"id": "legacy",
		"skill_used": "fabrication",
		"difficulty": 4,
		"components": [[["plank", 2], ["log", 1, "NO_RECOVER"]], [], [["nail", 6]]],
		"tools": [["hammer", ["welder", 10], ["screwdriver", -1]]],
		"qualities": [{"id": "CUT"}, [{"id": "SAW_W", "level": 2}, {"id": "SAW_M", "level": 1}]]
	}`)

	// Act
	decl, err := declarations.Normalize(doc)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, declarations.FormatLegacy, decl.Format)

	components := decl.Set.Components()
	require.Len(t, components, 2, "empty legacy groups are skipped")
	assert.False(t, components[0][1].Recoverable)
	assert.True(t, components[0][0].Recoverable)

	tools := decl.Set.Tools()
	require.Len(t, tools, 1)
	assert.Equal(t, crafting.ComponentGroup{
		crafting.NewTool("hammer"),
		crafting.NewChargedTool("welder", 10),
		{Type: "screwdriver", Count: 1, Recoverable: true},
	}, tools[0])

	qualities := decl.Set.Qualities()
	require.Len(t, qualities, 2)
	assert.Equal(t, 1, qualities[0][0].Level, "legacy quality level defaults to 1")
	assert.Len(t, qualities[1], 2)

	skill, ok := decl.Set.Skill("fabrication")
	require.True(t, ok)
	assert.Equal(t, 4, skill.Minimum)
	assert.Equal(t, 4, skill.Difficulty)
	assert.InDelta(t, crafting.DefaultBaseSuccess, skill.BaseSuccess, 1e-9)
}

func TestNormalize_LegacySkillsRequired(t *testing.T) {
	single, err := declarations.Normalize(parse(t, `{"id": "a", "skills_required": ["electronics", 2]}`))
	require.NoError(t, err)
	req, _ := single.Set.Skill("electronics")
	assert.InDelta(t, crafting.LegacyBaseSuccess, req.BaseSuccess, 1e-9)
	assert.Equal(t, 2, req.Minimum)

	multi, err := declarations.Normalize(parse(t, `{"id": "b", "skills_required": [["electronics", 2], ["tailor", 1]]}`))
	require.NoError(t, err)
	require.Len(t, multi.Set.Skills(), 2)
	req, _ = multi.Set.Skill("electronics")
	assert.InDelta(t, crafting.DefaultBaseSuccess, req.BaseSuccess, 1e-9)
}

func TestNormalize_LegacySkillUsedRequiresDifficulty(t *testing.T) {
	_, err := declarations.Normalize(parse(t, `{"id": "a", "skill_used": "tailor"}`))

	var le *declarations.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "difficulty", le.Field)
}

func TestNormalize_BothFormatsEvaluateIdentically(t *testing.T) {
	// Arrange
	current, err := declarations.Normalize(parse(t, `{"id": "c", "requirements": {
		"components": [[{"item": "plank", "count": 2}]],
		"tools": [[{"item": "hammer"}]],
		"qualities": [[{"quality": "CUT", "level": 1}]],
		"skills": [{"skill": "fabrication", "difficulty": 2}]
	}}`))
	require.NoError(t, err)

	legacy, err := declarations.Normalize(parse(t, `{"id": "l",
		"components": [[["plank", 2]]],
		"tools": [["hammer"]],
		"qualities": [{"id": "CUT", "level": 1}],
		"skill_used": "fabrication", "difficulty": 2
	}`))
	require.NoError(t, err)

	// Assert
	assert.Equal(t, current.Set, legacy.Set)
}

func TestEncode_RoundTripsThroughCurrentDecoder(t *testing.T) {
	// Arrange
	original, err := declarations.Normalize(parse(t, `{"id": "legacy",
		"components": [[["plank", 2], ["log", 1, "NO_RECOVER"]]],
		"tools": [["hammer", ["welder", 10]]],
		"qualities": [{"id": "CUT", "level": 2}],
		"skills_required": ["electronics", 2]
	}`))
	require.NoError(t, err)

	// Act
	raw, err := json.Marshal(declarations.Encode(original.ID, "Legacy", original.Set))
	require.NoError(t, err)
	decoded, err := declarations.Normalize(parse(t, string(raw)))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, declarations.FormatCurrent, decoded.Format)
	assert.Equal(t, "Legacy", decoded.Name)
	assert.Equal(t, original.Set, decoded.Set)
}
