package crafting

// DisplayTier classifies a skill requirement for presentation
type DisplayTier string

const (
	// TierBlocked means the level is below the minimum; the action is not permitted
	TierBlocked DisplayTier = "blocked"

	// TierDegraded means the minimum is met but the level is below the difficulty
	TierDegraded DisplayTier = "degraded"

	// TierFull means the level reaches the difficulty
	TierFull DisplayTier = "full"
)

// AlternativeTier classifies one component, tool or quality alternative for presentation
type AlternativeTier string

const (
	AlternativeAvailable AlternativeTier = "available"
	// AlternativeContended is present but needed by a competing role
	AlternativeContended AlternativeTier = "contended"
	// AlternativeCovered is missing but another alternative satisfies the group
	AlternativeCovered AlternativeTier = "covered"
	AlternativeMissing AlternativeTier = "missing"
)

// AlternativeTierOf derives the presentation tier of one alternative from an evaluation
func AlternativeTierOf(eval *Evaluation, category Category, group, alternative int) AlternativeTier {
	switch eval.Availability(category, group, alternative) {
	case Available:
		return AlternativeAvailable
	case Insufficient:
		return AlternativeContended
	}
	if eval.GroupSatisfied(category, group) {
		return AlternativeCovered
	}
	return AlternativeMissing
}
