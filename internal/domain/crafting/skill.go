package crafting

import (
	"fmt"
	"math"
)

const (
	// DefaultBaseSuccess is the success chance at exactly the required difficulty
	DefaultBaseSuccess = 0.5

	// LegacyBaseSuccess applies to the single-pair legacy skills_required form
	LegacyBaseSuccess = 0.55

	// DefaultStatFactor is the skill-level equivalent of one stat point away from 8
	DefaultStatFactor = 0.125

	// baselineStat is the stat value that neither helps nor hurts
	baselineStat = 8
)

// SkillRequirement gates an action on a skill and shapes its success curve.
// Minimum is the hard gate; Difficulty feeds the success curve.
type SkillRequirement struct {
	Skill       string
	Minimum     int
	Difficulty  int
	BaseSuccess float64
	StatFactor  float64
}

// NewSkillRequirement creates a requirement whose minimum equals its difficulty
func NewSkillRequirement(skill string, difficulty int) SkillRequirement {
	return SkillRequirement{
		Skill:       skill,
		Minimum:     difficulty,
		Difficulty:  difficulty,
		BaseSuccess: DefaultBaseSuccess,
		StatFactor:  DefaultStatFactor,
	}
}

// MeetsMinimum reports whether the actor passes the hard gate
func (s SkillRequirement) MeetsMinimum(a Actor) bool {
	return a.SkillLevel(s.Skill) >= s.Minimum
}

// SuccessRate is the probability of succeeding on this skill alone.
//
// rate = 1 - (1 - base)^(2^(adjusted - difficulty - modifier + (stat-8)*factor))
// Difficulty 0 can never fail.
func (s SkillRequirement) SuccessRate(a Actor, difficultyModifier float64) float64 {
	if s.Difficulty == 0 {
		return 1.0
	}

	relativeDifficulty := a.AdjustedSkillLevel(s.Skill) - float64(s.Difficulty)
	statBonus := float64(a.StatFor(s.Skill)-baselineStat) * s.StatFactor
	exponent := math.Pow(2, relativeDifficulty-difficultyModifier+statBonus)

	return clampUnit(1.0 - math.Pow(1.0-s.BaseSuccess, exponent))
}

// Tier classifies the actor's standing for presentation
func (s SkillRequirement) Tier(a Actor) DisplayTier {
	level := a.SkillLevel(s.Skill)
	switch {
	case level < s.Minimum:
		return TierBlocked
	case level < s.Difficulty:
		return TierDegraded
	default:
		return TierFull
	}
}

// Describe renders e.g. "level 3 fabrication"
func (s SkillRequirement) Describe() string {
	return fmt.Sprintf("level %d %s", s.Difficulty, s.Skill)
}

func (s SkillRequirement) validate() error {
	switch {
	case s.Skill == "":
		return &ErrInvalidRequirement{Category: CategorySkills, Key: s.Skill, Reason: "empty skill id"}
	case s.Difficulty < 0:
		return &ErrInvalidRequirement{Category: CategorySkills, Key: s.Skill, Reason: "negative difficulty"}
	case s.Minimum < 0:
		return &ErrInvalidRequirement{Category: CategorySkills, Key: s.Skill, Reason: "negative minimum"}
	case s.BaseSuccess < 0 || s.BaseSuccess > 1:
		return &ErrInvalidRequirement{Category: CategorySkills, Key: s.Skill, Reason: "base success outside [0,1]"}
	}
	return nil
}

func clampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
