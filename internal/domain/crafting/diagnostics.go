package crafting

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// Severity of a declaration diagnostic
type Severity string

const (
	SeverityWarning Severity = "warning"
)

// DiagnosticKind names what a diagnostic is about
type DiagnosticKind string

const (
	DiagnosticUnknownItem    DiagnosticKind = "unknown_item"
	DiagnosticUnknownQuality DiagnosticKind = "unknown_quality"
)

// Diagnostic is a non-fatal consistency finding. The offending requirement stays in
// the set; it simply can never resolve to Available.
type Diagnostic struct {
	Severity    Severity       `json:"severity"`
	Kind        DiagnosticKind `json:"kind"`
	Category    Category       `json:"category"`
	Group       int            `json:"group"`
	Alternative int            `json:"alternative"`
	Reference   string         `json:"reference"`
	Message     string         `json:"message"`
	Suggestion  string         `json:"suggestion,omitempty"`
}

func (d Diagnostic) String() string {
	msg := fmt.Sprintf("%s: %s (%s group %d)", d.Severity, d.Message, d.Category, d.Group)
	if d.Suggestion != "" {
		msg += fmt.Sprintf(", did you mean %q?", d.Suggestion)
	}
	return msg
}

// Validate checks every tool, component and quality reference against the catalog
func Validate(set *RequirementSet, cat ItemCatalog) []Diagnostic {
	if cat == nil {
		return nil
	}
	var diags []Diagnostic
	diags = appendDiagnostics(diags, CategoryTools, set.tools, cat)
	diags = appendDiagnostics(diags, CategoryComponents, set.components, cat)
	diags = appendDiagnostics(diags, CategoryQualities, set.qualities, cat)
	return diags
}

func appendDiagnostics[G ~[]T, T Requirement](diags []Diagnostic, category Category, groups []G, cat ItemCatalog) []Diagnostic {
	for g, group := range groups {
		for a, req := range group {
			for _, d := range req.Validate(cat) {
				d.Category = category
				d.Group = g
				d.Alternative = a
				diags = append(diags, d)
			}
		}
	}
	return diags
}

// maxSuggestionDistance bounds how different a suggestion may be from the unknown id
const maxSuggestionDistance = 3

// suggest returns the closest known id, or "" when nothing is close enough
func suggest(unknown string, known []string) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, id := range known {
		d := levenshtein.ComputeDistance(unknown, id)
		if d < bestDistance {
			best, bestDistance = id, d
		}
	}
	return best
}
