package crafting

// GroupResolution is the plain resolver output for one list of alternative groups
type GroupResolution struct {
	Alternatives [][]Availability
	Satisfied    []bool
}

// AllSatisfied reports whether every group has an Available alternative
func (r GroupResolution) AllSatisfied() bool {
	for _, ok := range r.Satisfied {
		if !ok {
			return false
		}
	}
	return true
}

// Resolve evaluates every alternative of every group against the inventory scaled
// by batch. Alternatives are never short-circuited: reconciliation needs the state
// of each one, not only the first that satisfies its group.
func Resolve[G ~[]T, T Requirement](groups []G, inv Inventory, batch int) GroupResolution {
	res := GroupResolution{
		Alternatives: make([][]Availability, len(groups)),
		Satisfied:    make([]bool, len(groups)),
	}

	for g, group := range groups {
		states := make([]Availability, len(group))
		for a, req := range group {
			states[a] = req.Resolve(inv, batch)
		}
		res.Alternatives[g] = states
		res.Satisfied[g] = anyAvailable(states)
	}

	return res
}
