package declarations

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/declaration.schema.json
var declarationSchema string

var envelopeSchema = jsonschema.MustCompileString("declaration.schema.json", declarationSchema)

// Result is the outcome of loading one declaration file. Structural problems are
// collected per declaration and never abort the load.
type Result struct {
	Declarations []Declaration
	Errors       []*LoadError
	// Digest is the sha256 of the raw file contents
	Digest string
}

// LoadFile reads a JSON or YAML declaration file, chosen by extension
func LoadFile(path string) (*Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read declarations: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(raw)
	default:
		return LoadJSON(raw)
	}
}

// LoadJSON loads declarations from a JSON document
func LoadJSON(raw []byte) (*Result, error) {
	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse declarations: %w", err)
	}
	return load(tree, raw)
}

// LoadYAML loads declarations from a YAML document. The tree is round tripped
// through JSON so both formats reach the decoders with identical value types.
func LoadYAML(raw []byte) (*Result, error) {
	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse declarations: %w", err)
	}
	asJSON, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("declarations must use string keys: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(asJSON, &normalized); err != nil {
		return nil, fmt.Errorf("failed to normalise declarations: %w", err)
	}
	return load(normalized, raw)
}

// documents accepts a list of declarations, {"declarations": [...]} or one declaration
func documents(tree any) ([]any, error) {
	switch v := tree.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if list, ok := v["declarations"].([]any); ok {
			return list, nil
		}
		return []any{v}, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("declarations must be an object or a list, got %T", tree)
	}
}

func load(tree any, raw []byte) (*Result, error) {
	docs, err := documents(tree)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(raw)
	res := &Result{Digest: hex.EncodeToString(sum[:])}
	seen := make(map[string]bool, len(docs))

	for i, entry := range docs {
		decl, err := loadDocument(entry)
		if err != nil {
			var le *LoadError
			if !errors.As(err, &le) {
				le = &LoadError{Reason: err.Error()}
			}
			if le.DeclarationID == "" {
				le.DeclarationID = fmt.Sprintf("#%d", i)
			}
			res.Errors = append(res.Errors, le)
			continue
		}
		if seen[decl.ID] {
			res.Errors = append(res.Errors, &LoadError{DeclarationID: decl.ID, Field: "id", Reason: "duplicate declaration id"})
			continue
		}
		seen[decl.ID] = true
		res.Declarations = append(res.Declarations, decl)
	}

	return res, nil
}

func loadDocument(entry any) (Declaration, error) {
	doc, ok := entry.(map[string]any)
	id := ""
	if ok {
		id, _ = doc["id"].(string)
	}

	if err := envelopeSchema.Validate(entry); err != nil {
		return Declaration{}, schemaError(id, err)
	}

	return Normalize(doc)
}

// schemaError reduces a schema violation to its innermost cause
func schemaError(id string, err error) *LoadError {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &LoadError{DeclarationID: id, Reason: err.Error()}
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	return &LoadError{
		DeclarationID: id,
		Field:         strings.TrimPrefix(leaf.InstanceLocation, "/"),
		Reason:        leaf.Message,
	}
}
