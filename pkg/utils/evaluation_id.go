package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateEvaluationID creates a human-readable evaluation log ID.
// Format: {kind}-{declaration}-{8charHexUUID}
//
// Example:
//   - Input: kind="craftability", declarationID="Bookshelf Large"
//   - Output: "craftability-bookshelf_large-a3f8e2b1"
func GenerateEvaluationID(kind, declarationID string) string {
	return kind + "-" + slug(declarationID) + "-" + generateShortUUID()
}

// slug lowercases the id and replaces whitespace and path separators with underscores
func slug(id string) string {
	if id == "" {
		return "none"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '/', '\\':
			return '_'
		}
		return r
	}, strings.ToLower(id))
}

// generateShortUUID creates an 8-character hex string from a UUID
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
