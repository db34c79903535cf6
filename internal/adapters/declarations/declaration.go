package declarations

import (
	"errors"
	"fmt"

	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

// Format identifies the shape a declaration was written in. It is recorded for
// reporting only; once normalised, every declaration is evaluated the same way.
type Format string

const (
	FormatCurrent Format = "current"
	FormatLegacy  Format = "legacy"
)

// Declaration is a normalised declaration together with the format it was read from
type Declaration struct {
	crafting.Declaration
	Format Format
}

// LoadError reports a structural problem in one declaration. It is fatal to that
// declaration only; loading continues with the others.
type LoadError struct {
	DeclarationID string
	Field         string
	Reason        string
}

func (e *LoadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("declaration %q: %s", e.DeclarationID, e.Reason)
	}
	return fmt.Sprintf("declaration %q: %s: %s", e.DeclarationID, e.Field, e.Reason)
}

// Decoder turns one raw declaration document into a requirement set
type Decoder interface {
	Format() Format
	Decode(doc map[string]any) (*crafting.RequirementSet, error)
}

// DecoderFor selects the decoder matching the document shape: documents with a
// "requirements" object use the current format, everything else the legacy one.
func DecoderFor(doc map[string]any) Decoder {
	if _, ok := doc["requirements"].(map[string]any); ok {
		return CurrentDecoder{}
	}
	return LegacyDecoder{}
}

// Normalize decodes one document into a Declaration
func Normalize(doc map[string]any) (Declaration, error) {
	id, _ := doc["id"].(string)
	if id == "" {
		return Declaration{}, &LoadError{Field: "id", Reason: "missing mandatory field"}
	}
	name, _ := doc["name"].(string)

	decoder := DecoderFor(doc)
	set, err := decoder.Decode(doc)
	if err != nil {
		return Declaration{}, withDeclarationID(err, id)
	}

	return Declaration{
		Declaration: crafting.Declaration{ID: id, Name: name, Set: set},
		Format:      decoder.Format(),
	}, nil
}

// withDeclarationID stamps the owning declaration onto load errors and wraps
// construction errors from the domain.
func withDeclarationID(err error, id string) error {
	var le *LoadError
	if errors.As(err, &le) {
		le.DeclarationID = id
		return le
	}
	return &LoadError{DeclarationID: id, Reason: err.Error()}
}
