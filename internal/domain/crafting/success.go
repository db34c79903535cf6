package crafting

import "math"

// MeetsSkillGate is true iff the actor's level in every required skill is at least
// the requirement's minimum. Failing the gate blocks the action regardless of the
// success probability.
func MeetsSkillGate(set *RequirementSet, actor Actor) bool {
	for _, req := range set.skills {
		if !req.MeetsMinimum(actor) {
			return false
		}
	}
	return true
}

// UnmetSkills returns the requirements whose minimum the actor does not reach
func UnmetSkills(set *RequirementSet, actor Actor) []SkillRequirement {
	var unmet []SkillRequirement
	for _, req := range set.Skills() {
		if !req.MeetsMinimum(actor) {
			unmet = append(unmet, req)
		}
	}
	return unmet
}

// SuccessProbability combines the per-skill rates as prod(rate_i ^ (1/n)).
//
// This geometric-mean style compounding lets a single weak skill lower the result
// less harshly than a plain product would. With no skill requirements the action
// always succeeds.
func SuccessProbability(set *RequirementSet, actor Actor, difficultyModifier float64) float64 {
	n := len(set.skills)
	if n == 0 {
		return 1.0
	}

	compound := 1.0
	for _, req := range set.Skills() {
		rate := req.SuccessRate(actor, difficultyModifier)
		compound *= math.Pow(rate, 1.0/float64(n))
	}
	return clampUnit(compound)
}

// SkillAssessment is the per-skill view a presentation layer needs
type SkillAssessment struct {
	Requirement SkillRequirement
	Level       int
	Rate        float64
	Tier        DisplayTier
}

// AssessSkills evaluates every skill requirement of the set for the actor
func AssessSkills(set *RequirementSet, actor Actor, difficultyModifier float64) []SkillAssessment {
	reqs := set.Skills()
	out := make([]SkillAssessment, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, SkillAssessment{
			Requirement: req,
			Level:       actor.SkillLevel(req.Skill),
			Rate:        req.SuccessRate(actor, difficultyModifier),
			Tier:        req.Tier(actor),
		})
	}
	return out
}
