package crafting

import "math"

// MatchPolicy selects which tool or quality entries a component is reconciled against
// when its item type appears in more than one group.
type MatchPolicy string

const (
	// MatchFirst reconciles against the first matching entry across all groups,
	// whatever that entry's own availability
	MatchFirst MatchPolicy = "first"

	// MatchAll reconciles against every matching entry
	MatchAll MatchPolicy = "all"
)

// ParseMatchPolicy converts a configuration value into a MatchPolicy
func ParseMatchPolicy(name string) (MatchPolicy, error) {
	switch MatchPolicy(name) {
	case MatchFirst, "":
		return MatchFirst, nil
	case MatchAll:
		return MatchAll, nil
	default:
		return "", &ErrUnknownMatchPolicy{Name: name}
	}
}

type groupRef struct {
	group       int
	alternative int
}

// reconciler corrects the plain resolver output for item types that would have to
// fill a component role and a tool or quality role from the same stock.
//
// Tools and qualities must already be resolved: reconciliation reads their states.
type reconciler struct {
	catalog ItemCatalog
	policy  MatchPolicy
}

func (r *reconciler) reconcile(set *RequirementSet, inv Inventory, eval *Evaluation) {
	for g, group := range set.components {
		for a, comp := range group {
			if eval.components[g][a] != Available {
				continue
			}
			if d, contended := r.toolContention(set, inv, eval, comp); contended {
				d.Group, d.Alternative = g, a
				eval.components[g][a] = Insufficient
				eval.downgrades = append(eval.downgrades, d)
				continue
			}
			if d, contended := r.qualityContention(set, inv, eval, comp); contended {
				d.Group, d.Alternative = g, a
				eval.components[g][a] = Insufficient
				eval.downgrades = append(eval.downgrades, d)
			}
		}
	}
}

// toolContention checks whether the inventory holds enough of the item type to be
// consumed as the component and used as the tool at the same time.
func (r *reconciler) toolContention(set *RequirementSet, inv Inventory, eval *Evaluation, comp ComponentRequirement) (Downgrade, bool) {
	consumed, ok := scaled(comp.Count, eval.batch)

	for _, ref := range r.matchingTools(set, comp.Type) {
		if eval.tools[ref.group][ref.alternative] != Available {
			continue
		}
		tool := set.tools[ref.group][ref.alternative]
		demand, fits := sum(consumed, tool.perUse())

		// either measure of the item type may cover both roles
		pooled := ok && fits && (inv.HasItem(comp.Type, demand) || inv.HasCharges(comp.Type, demand))
		if !pooled {
			return Downgrade{
				ItemType: comp.Type,
				Reason:   DowngradeToolOverlap,
				Against:  tool.Type,
				Demand:   demand,
			}, true
		}
	}
	return Downgrade{}, false
}

// qualityContention checks, for every quality the component's item type carries
// and that a quality requirement asks for at a level the item meets, whether the
// component count plus one tool is held among items with that quality.
// The batch does not scale this demand.
func (r *reconciler) qualityContention(set *RequirementSet, inv Inventory, eval *Evaluation, comp ComponentRequirement) (Downgrade, bool) {
	if r.catalog == nil {
		return Downgrade{}, false
	}
	demand, ok := sum(comp.Count, 1)
	if !ok {
		demand = math.MaxInt
	}

	for _, intrinsic := range r.catalog.IntrinsicQualities(comp.Type) {
		for _, ref := range r.matchingQualities(set, intrinsic.Quality) {
			req := set.qualities[ref.group][ref.alternative]
			if req.Level > intrinsic.Level {
				continue
			}
			if eval.qualities[ref.group][ref.alternative] != Available {
				continue
			}
			if !inv.HasQuality(req.Quality, req.Level, demand) {
				return Downgrade{
					ItemType: comp.Type,
					Reason:   DowngradeQualityOverlap,
					Against:  req.Quality,
					Demand:   demand,
				}, true
			}
		}
	}
	return Downgrade{}, false
}

func (r *reconciler) matchingTools(set *RequirementSet, itemType string) []groupRef {
	var refs []groupRef
	for g, group := range set.tools {
		for a, tool := range group {
			if tool.Type != itemType {
				continue
			}
			refs = append(refs, groupRef{group: g, alternative: a})
			if r.policy != MatchAll {
				return refs
			}
		}
	}
	return refs
}

func (r *reconciler) matchingQualities(set *RequirementSet, quality string) []groupRef {
	var refs []groupRef
	for g, group := range set.qualities {
		for a, q := range group {
			if q.Quality != quality {
				continue
			}
			refs = append(refs, groupRef{group: g, alternative: a})
			if r.policy != MatchAll {
				return refs
			}
		}
	}
	return refs
}
