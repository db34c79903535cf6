package crafting

import "github.com/andrescamacho/craftreq/internal/domain/catalog"

// Inventory is the crafting inventory snapshot the resolver queries.
// Answers are authoritative; the engine never distinguishes "false" from "unknown".
type Inventory interface {
	// HasItem reports whether at least quantity discrete units of the item type are present
	HasItem(itemType string, quantity int) bool

	// HasCharges reports whether at least charges charges of the item type are present
	HasCharges(itemType string, charges int) bool

	// HasQuality reports whether at least quantity items carry the quality at level or above
	HasQuality(quality string, level int, quantity int) bool
}

// ItemCatalog is the read-only item and quality metadata the engine consumes
type ItemCatalog interface {
	IntrinsicQualities(itemType string) []catalog.QualityLevel
	ItemExists(itemType string) bool
	HasQuality(quality string) bool
	ItemName(itemType string) string
	QualityName(quality string) string
	ItemIDs() []string
	QualityIDs() []string
}

// Actor is the skill and stat view of whoever attempts the action
type Actor interface {
	// SkillLevel is the actor's current whole level in the skill
	SkillLevel(skill string) int

	// AdjustedSkillLevel is the level plus partial progress toward the next one
	AdjustedSkillLevel(skill string) float64

	// StatFor is the stat value that modifies success for the skill
	StatFor(skill string) int
}
