package crafting

// DowngradeReason explains why a component alternative was marked Insufficient
type DowngradeReason string

const (
	// DowngradeToolOverlap means the same item type is also needed as a tool
	DowngradeToolOverlap DowngradeReason = "tool_overlap"

	// DowngradeQualityOverlap means the item also has to provide a required tool quality
	DowngradeQualityOverlap DowngradeReason = "quality_overlap"
)

// Downgrade records one reconciliation decision
type Downgrade struct {
	Group       int
	Alternative int
	ItemType    string
	Reason      DowngradeReason
	// Against is the competing tool item type or quality id
	Against string
	// Demand is the pooled quantity the inventory could not cover
	Demand int
}

// Evaluation holds the per-call availability annotations of one requirement set
// against one inventory snapshot, indexed by (group, alternative).
//
// Each call to Engine.Evaluate returns a fresh Evaluation; the requirement set
// itself is never annotated.
type Evaluation struct {
	batch      int
	components [][]Availability
	tools      [][]Availability
	qualities  [][]Availability
	downgrades []Downgrade
}

// Batch is the batch multiplier the evaluation was computed for
func (e *Evaluation) Batch() int { return e.batch }

func (e *Evaluation) table(category Category) [][]Availability {
	switch category {
	case CategoryComponents:
		return e.components
	case CategoryTools:
		return e.tools
	case CategoryQualities:
		return e.qualities
	default:
		return nil
	}
}

// Availability returns the annotation of one alternative.
// Out-of-range indices read as Unavailable.
func (e *Evaluation) Availability(category Category, group, alternative int) Availability {
	table := e.table(category)
	if group < 0 || group >= len(table) {
		return Unavailable
	}
	if alternative < 0 || alternative >= len(table[group]) {
		return Unavailable
	}
	return table[group][alternative]
}

// Alternatives returns a copy of the annotations of one group
func (e *Evaluation) Alternatives(category Category, group int) []Availability {
	table := e.table(category)
	if group < 0 || group >= len(table) {
		return nil
	}
	return append([]Availability(nil), table[group]...)
}

// GroupCount returns the number of groups evaluated in the category
func (e *Evaluation) GroupCount(category Category) int {
	return len(e.table(category))
}

// GroupSatisfied reports whether at least one alternative of the group is Available
func (e *Evaluation) GroupSatisfied(category Category, group int) bool {
	table := e.table(category)
	if group < 0 || group >= len(table) {
		return false
	}
	return anyAvailable(table[group])
}

// Satisfied reports whether every group of the category is satisfied
func (e *Evaluation) Satisfied(category Category) bool {
	for _, group := range e.table(category) {
		if !anyAvailable(group) {
			return false
		}
	}
	return true
}

// CanCraft is the overall verdict: every quality, tool and component group is
// satisfied after reconciliation. A component group whose only available
// alternatives were downgraded to Insufficient is not satisfied.
func (e *Evaluation) CanCraft() bool {
	return e.Satisfied(CategoryQualities) &&
		e.Satisfied(CategoryTools) &&
		e.Satisfied(CategoryComponents)
}

// Downgrades lists the reconciliation decisions taken, in evaluation order
func (e *Evaluation) Downgrades() []Downgrade {
	return append([]Downgrade(nil), e.downgrades...)
}

func anyAvailable(alternatives []Availability) bool {
	for _, a := range alternatives {
		if a == Available {
			return true
		}
	}
	return false
}
