package crafting

import "fmt"

// QualityRequirement asks for any item carrying a quality at a minimum level
type QualityRequirement struct {
	Quality string
	Level   int
}

// NewQualityRequirement creates a quality requirement
func NewQualityRequirement(quality string, level int) QualityRequirement {
	return QualityRequirement{Quality: quality, Level: level}
}

func (q QualityRequirement) Key() string { return q.Quality }

// Resolve checks for one item with the quality. Batch does not scale tool qualities.
func (q QualityRequirement) Resolve(inv Inventory, _ int) Availability {
	return availabilityOf(inv.HasQuality(q.Quality, q.Level, 1))
}

// Describe renders e.g. "tool with cutting of 2 or more"
func (q QualityRequirement) Describe(names ItemCatalog, _ int) string {
	name := q.Quality
	if names != nil {
		name = names.QualityName(q.Quality)
	}
	return fmt.Sprintf("tool with %s of %d or more", name, q.Level)
}

// Validate reports an undefined quality id
func (q QualityRequirement) Validate(cat ItemCatalog) []Diagnostic {
	if cat == nil || cat.HasQuality(q.Quality) {
		return nil
	}
	return []Diagnostic{{
		Severity:   SeverityWarning,
		Kind:       DiagnosticUnknownQuality,
		Reference:  q.Quality,
		Message:    fmt.Sprintf("unknown quality %s", q.Quality),
		Suggestion: suggest(q.Quality, cat.QualityIDs()),
	}}
}
