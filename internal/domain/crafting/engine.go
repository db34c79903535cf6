package crafting

// Engine evaluates requirement sets against inventories and actors.
//
// An Engine holds only read-only collaborators and is safe for concurrent use.
type Engine struct {
	catalog ItemCatalog
	policy  MatchPolicy
}

// NewEngine creates an engine with the first-match reconciliation policy
func NewEngine(cat ItemCatalog) *Engine {
	return &Engine{catalog: cat, policy: MatchFirst}
}

// NewEngineWithPolicy creates an engine with an explicit reconciliation policy
func NewEngineWithPolicy(cat ItemCatalog, policy MatchPolicy) *Engine {
	if policy == "" {
		policy = MatchFirst
	}
	return &Engine{catalog: cat, policy: policy}
}

// Policy returns the reconciliation policy in use
func (e *Engine) Policy() MatchPolicy { return e.policy }

// Catalog returns the catalog the engine reads item metadata from
func (e *Engine) Catalog() ItemCatalog { return e.catalog }

// Evaluate resolves every alternative of the set against the inventory and
// reconciles shared item types. A batch below 1 is treated as 1.
// References the catalog does not define are always Unavailable.
//
// Qualities and tools are resolved before components are reconciled.
func (e *Engine) Evaluate(set *RequirementSet, inv Inventory, batch int) *Evaluation {
	if batch < 1 {
		batch = 1
	}

	eval := &Evaluation{
		batch:      batch,
		qualities:  Resolve(set.qualities, inv, batch).Alternatives,
		tools:      Resolve(set.tools, inv, batch).Alternatives,
		components: Resolve(set.components, inv, batch).Alternatives,
	}

	e.markUndefined(set, eval)

	r := &reconciler{catalog: e.catalog, policy: e.policy}
	r.reconcile(set, inv, eval)

	return eval
}

func (e *Engine) markUndefined(set *RequirementSet, eval *Evaluation) {
	if e.catalog == nil {
		return
	}
	for g, group := range set.qualities {
		for a, q := range group {
			if !e.catalog.HasQuality(q.Quality) {
				eval.qualities[g][a] = Unavailable
			}
		}
	}
	for g, group := range set.tools {
		for a, tool := range group {
			if !e.catalog.ItemExists(tool.Type) {
				eval.tools[g][a] = Unavailable
			}
		}
	}
	for g, group := range set.components {
		for a, comp := range group {
			if !e.catalog.ItemExists(comp.Type) {
				eval.components[g][a] = Unavailable
			}
		}
	}
}

// CanCraft reports whether the inventory satisfies every group of the set
func (e *Engine) CanCraft(set *RequirementSet, inv Inventory, batch int) bool {
	return e.Evaluate(set, inv, batch).CanCraft()
}

// MeetsSkillGate reports whether the actor meets every skill minimum
func (e *Engine) MeetsSkillGate(set *RequirementSet, actor Actor) bool {
	return MeetsSkillGate(set, actor)
}

// SuccessProbability computes the compound success rate of the set for the actor
func (e *Engine) SuccessProbability(set *RequirementSet, actor Actor, difficultyModifier float64) float64 {
	return SuccessProbability(set, actor, difficultyModifier)
}

// MissingReport lists the groups the evaluation left unsatisfied
func (e *Engine) MissingReport(set *RequirementSet, eval *Evaluation) []MissingGroup {
	return MissingReport(set, eval, e.catalog)
}

// Validate reports references to item types and qualities the catalog does not define
func (e *Engine) Validate(set *RequirementSet) []Diagnostic {
	return Validate(set, e.catalog)
}
