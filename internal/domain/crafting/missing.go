package crafting

// MissingAlternative describes one alternative of an unsatisfied group
type MissingAlternative struct {
	Key          string       `json:"key"`
	Description  string       `json:"description"`
	Availability Availability `json:"availability"`
}

// MissingGroup is one alternative group with no Available alternative
type MissingGroup struct {
	Category     Category             `json:"category"`
	Group        int                  `json:"group"`
	Alternatives []MissingAlternative `json:"alternatives"`
}

// MissingReport lists every unsatisfied group of the evaluation in the order
// tools, qualities, components. Rendering is left to the caller.
func MissingReport(set *RequirementSet, eval *Evaluation, names ItemCatalog) []MissingGroup {
	var report []MissingGroup
	report = appendMissing(report, CategoryTools, set.tools, eval, names)
	report = appendMissing(report, CategoryQualities, set.qualities, eval, names)
	report = appendMissing(report, CategoryComponents, set.components, eval, names)
	return report
}

func appendMissing[G ~[]T, T Requirement](
	report []MissingGroup,
	category Category,
	groups []G,
	eval *Evaluation,
	names ItemCatalog,
) []MissingGroup {
	for g, group := range groups {
		if eval.GroupSatisfied(category, g) {
			continue
		}
		missing := MissingGroup{
			Category:     category,
			Group:        g,
			Alternatives: make([]MissingAlternative, 0, len(group)),
		}
		for a, req := range group {
			missing.Alternatives = append(missing.Alternatives, MissingAlternative{
				Key:          req.Key(),
				Description:  req.Describe(names, eval.Batch()),
				Availability: eval.Availability(category, g, a),
			})
		}
		report = append(report, missing)
	}
	return report
}
