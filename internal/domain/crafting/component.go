package crafting

import (
	"fmt"
	"math"
)

// ComponentRequirement is one alternative of a component or tool group.
//
// Count is measured in charges when ByCharges is set and in discrete units
// otherwise. A tool with Count 0 only has to be present.
type ComponentRequirement struct {
	Type        string
	Count       int
	ByCharges   bool
	Recoverable bool
}

// NewComponent creates a recoverable component requirement measured in units
func NewComponent(itemType string, count int) ComponentRequirement {
	return ComponentRequirement{Type: itemType, Count: count, Recoverable: true}
}

// NewTool creates a tool requirement that only has to be present
func NewTool(itemType string) ComponentRequirement {
	return ComponentRequirement{Type: itemType, Recoverable: true}
}

// NewChargedTool creates a tool requirement consuming charges per batch unit
func NewChargedTool(itemType string, charges int) ComponentRequirement {
	return ComponentRequirement{Type: itemType, Count: charges, ByCharges: true, Recoverable: true}
}

func (c ComponentRequirement) Key() string { return c.Type }

// Resolve checks the requirement against the inventory
func (c ComponentRequirement) Resolve(inv Inventory, batch int) Availability {
	if c.Count == 0 {
		return availabilityOf(inv.HasItem(c.Type, 1))
	}
	total, ok := scaled(c.Count, batch)
	if !ok {
		return Unavailable
	}
	if c.ByCharges {
		return availabilityOf(inv.HasCharges(c.Type, total))
	}
	return availabilityOf(inv.HasItem(c.Type, total))
}

// perUse is the quantity a tool occupies while being used for one action:
// a single item for charged tools, the declared count otherwise.
func (c ComponentRequirement) perUse() int {
	if c.ByCharges {
		return 1
	}
	return c.Count
}

// Describe renders e.g. "hammer", "welder (10 charges)" or "4 plank"
func (c ComponentRequirement) Describe(names ItemCatalog, batch int) string {
	name := c.Type
	if names != nil {
		name = names.ItemName(c.Type)
	}

	total, ok := scaled(c.Count, batch)
	if !ok {
		total = math.MaxInt
	}
	switch {
	case c.Count == 0:
		return name
	case c.ByCharges:
		if total == 1 {
			return fmt.Sprintf("%s (1 charge)", name)
		}
		return fmt.Sprintf("%s (%d charges)", name, total)
	default:
		return fmt.Sprintf("%d %s", total, name)
	}
}

// Validate reports an undefined item type
func (c ComponentRequirement) Validate(cat ItemCatalog) []Diagnostic {
	if cat == nil || cat.ItemExists(c.Type) {
		return nil
	}
	return []Diagnostic{{
		Severity:   SeverityWarning,
		Kind:       DiagnosticUnknownItem,
		Reference:  c.Type,
		Message:    fmt.Sprintf("%s is not a valid item template", c.Type),
		Suggestion: suggest(c.Type, cat.ItemIDs()),
	}}
}
