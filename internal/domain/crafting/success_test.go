package crafting_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

func fabrication(difficulty, minimum int) crafting.SkillRequirement {
	req := crafting.NewSkillRequirement("fabrication", difficulty)
	req.Minimum = minimum
	return req
}

func TestSuccessRate_AtDifficultyEqualsBase(t *testing.T) {
	// Arrange
	req := fabrication(3, 2)
	a := testActor(t, 8, map[string]int{"fabrication": 3})

	// Act
	rate := req.SuccessRate(a, 0)

	// Assert
	assert.InDelta(t, 0.5, rate, 1e-9)
}

func TestSuccessRate_ZeroDifficultyNeverFails(t *testing.T) {
	req := crafting.NewSkillRequirement("fabrication", 0)
	a := testActor(t, 1, nil)

	assert.Equal(t, 1.0, req.SuccessRate(a, 5))
}

func TestSuccessRate_MonotonicInLevelAndStat(t *testing.T) {
	req := fabrication(4, 0)

	previous := -1.0
	for level := 0; level <= 8; level++ {
		rate := req.SuccessRate(testActor(t, 8, map[string]int{"fabrication": level}), 0)
		assert.GreaterOrEqual(t, rate, previous, "level %d", level)
		previous = rate
	}

	previous = -1.0
	for stat := 4; stat <= 14; stat++ {
		rate := req.SuccessRate(testActor(t, stat, map[string]int{"fabrication": 3}), 0)
		assert.GreaterOrEqual(t, rate, previous, "stat %d", stat)
		previous = rate
	}
}

func TestSuccessRate_ModifierLowersRate(t *testing.T) {
	req := fabrication(3, 0)
	a := testActor(t, 8, map[string]int{"fabrication": 3})

	assert.Less(t, req.SuccessRate(a, 1), req.SuccessRate(a, 0))
	assert.Greater(t, req.SuccessRate(a, -1), req.SuccessRate(a, 0))
}

func TestSuccessRate_PartialProgressCounts(t *testing.T) {
	// Arrange
	req := fabrication(3, 0)
	a := testActor(t, 8, nil)
	require.NoError(t, a.SetSkill("fabrication", 3, 0.5))

	// Act
	rate := req.SuccessRate(a, 0)

	// Assert
	expected := 1 - math.Pow(0.5, math.Pow(2, 0.5))
	assert.InDelta(t, expected, rate, 1e-9)
}

func TestSuccessProbability_Compounding(t *testing.T) {
	a := testActor(t, 8, map[string]int{"fabrication": 3, "electronics": 3})

	single := mustSet(t, nil, nil, nil, fabrication(3, 0))
	both := mustSet(t, nil, nil, nil,
		fabrication(3, 0),
		crafting.NewSkillRequirement("electronics", 3),
	)

	assert.InDelta(t, 0.5, crafting.SuccessProbability(single, a, 0), 1e-9)
	assert.InDelta(t, 0.5, crafting.SuccessProbability(both, a, 0), 1e-9, "equal rates compound to the same rate")
}

func TestSuccessProbability_UnequalRatesGeometricMean(t *testing.T) {
	// Arrange
	a := testActor(t, 8, map[string]int{"fabrication": 3, "electronics": 2})
	electronics := crafting.NewSkillRequirement("electronics", 3)
	set := mustSet(t, nil, nil, nil, fabrication(3, 0), electronics)

	// Act
	p := crafting.SuccessProbability(set, a, 0)

	// Assert
	r1 := fabrication(3, 0).SuccessRate(a, 0)
	r2 := electronics.SuccessRate(a, 0)
	assert.InDelta(t, math.Sqrt(r1*r2), p, 1e-9)
	assert.GreaterOrEqual(t, p, 0.0)
	assert.LessOrEqual(t, p, 1.0)
}

func TestSuccessProbability_NoSkillsAlwaysSucceeds(t *testing.T) {
	set := mustSet(t, []crafting.ComponentGroup{{crafting.NewComponent("plank", 1)}}, nil, nil)

	assert.Equal(t, 1.0, crafting.SuccessProbability(set, testActor(t, 8, nil), 3))
}

func TestMeetsSkillGate_IndependentOfProbability(t *testing.T) {
	// Arrange
	set := mustSet(t, nil, nil, nil, fabrication(6, 2))
	novice := testActor(t, 8, map[string]int{"fabrication": 1})
	apprentice := testActor(t, 8, map[string]int{"fabrication": 2})

	// Assert
	assert.False(t, crafting.MeetsSkillGate(set, novice))
	assert.Greater(t, crafting.SuccessProbability(set, novice, 0), 0.0, "probability is computed even below the minimum")
	assert.True(t, crafting.MeetsSkillGate(set, apprentice))
	require.Len(t, crafting.UnmetSkills(set, novice), 1)
	assert.Empty(t, crafting.UnmetSkills(set, apprentice))
}

func TestSkillRequirement_Tier(t *testing.T) {
	req := fabrication(4, 2)

	tests := []struct {
		level int
		want  crafting.DisplayTier
	}{
		{1, crafting.TierBlocked},
		{2, crafting.TierDegraded},
		{3, crafting.TierDegraded},
		{4, crafting.TierFull},
		{7, crafting.TierFull},
	}
	for _, tt := range tests {
		a := testActor(t, 8, map[string]int{"fabrication": tt.level})
		assert.Equal(t, tt.want, req.Tier(a), "level %d", tt.level)
	}
}

func TestAssessSkills(t *testing.T) {
	a := testActor(t, 8, map[string]int{"fabrication": 3})
	set := mustSet(t, nil, nil, nil, fabrication(3, 2), crafting.NewSkillRequirement("tailor", 1))

	assessments := crafting.AssessSkills(set, a, 0)

	require.Len(t, assessments, 2)
	assert.Equal(t, "fabrication", assessments[0].Requirement.Skill)
	assert.Equal(t, 3, assessments[0].Level)
	assert.InDelta(t, 0.5, assessments[0].Rate, 1e-9)
	assert.Equal(t, crafting.TierFull, assessments[0].Tier)
	assert.Equal(t, crafting.TierBlocked, assessments[1].Tier)
}
