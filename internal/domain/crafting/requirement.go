package crafting

// Requirement is the capability shared by every inventory-resolved requirement
// kind (components, tools and tool qualities).
type Requirement interface {
	// Key is the item type or quality id the requirement refers to
	Key() string

	// Resolve evaluates the requirement against the inventory scaled by batch
	Resolve(inv Inventory, batch int) Availability

	// Describe renders a plain-text description. A nil catalog falls back to ids.
	Describe(names ItemCatalog, batch int) string

	// Validate reports references the catalog does not define
	Validate(cat ItemCatalog) []Diagnostic
}

var (
	_ Requirement = ComponentRequirement{}
	_ Requirement = QualityRequirement{}
)
