package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/craftreq/internal/domain/catalog"
)

// QualityDef is one quality entry of a catalog file
type QualityDef struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ItemQualityDef is one intrinsic quality of an item entry
type ItemQualityDef struct {
	ID    string `json:"id" yaml:"id"`
	Level int    `json:"level" yaml:"level"`
}

// ItemDef is one item type entry of a catalog file
type ItemDef struct {
	ID        string           `json:"id" yaml:"id"`
	Name      string           `json:"name" yaml:"name"`
	Qualities []ItemQualityDef `json:"qualities,omitempty" yaml:"qualities,omitempty"`
}

// File is the on-disk catalog layout
type File struct {
	Qualities []QualityDef `json:"qualities" yaml:"qualities"`
	Items     []ItemDef    `json:"items" yaml:"items"`
}

// Loaded is a built catalog together with the digest of the file it came from
type Loaded struct {
	Catalog    *catalog.Catalog
	FileDigest string
}

// Load reads a JSON or YAML catalog file, chosen by extension
func Load(path string) (*Loaded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	name := filepath.Base(path)
	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	default:
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	cat, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Loaded{Catalog: cat, FileDigest: sha256Hex(raw)}, nil
}

// Build registers every entry with a catalog builder and seals it
func (f *File) Build() (*catalog.Catalog, error) {
	b := catalog.NewBuilder()
	for _, q := range f.Qualities {
		if err := b.AddQuality(catalog.Quality{ID: q.ID, Name: q.Name}); err != nil {
			return nil, err
		}
	}
	for _, it := range f.Items {
		qualities := make([]catalog.QualityLevel, 0, len(it.Qualities))
		for _, q := range it.Qualities {
			qualities = append(qualities, catalog.QualityLevel{Quality: q.ID, Level: q.Level})
		}
		if err := b.AddItemType(catalog.ItemType{ID: it.ID, Name: it.Name, Qualities: qualities}); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
