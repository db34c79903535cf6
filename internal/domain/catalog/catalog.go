package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// Quality is an abstract tool capability (cutting, hammering, ...) that any item
// carrying it at a sufficient level can provide.
type Quality struct {
	ID   string
	Name string
}

// QualityLevel is one intrinsic quality carried by an item type
type QualityLevel struct {
	Quality string
	Level   int
}

// ItemType is the catalog metadata the requirement engine needs about an item
type ItemType struct {
	ID        string
	Name      string
	Qualities []QualityLevel
}

// Catalog is the read-only lookup of qualities and item types.
//
// A Catalog is produced once by Builder.Build and never mutated afterwards, so it is
// safe to share between goroutines. It is passed explicitly to every consumer; there
// is no process-wide registry.
type Catalog struct {
	qualities map[string]Quality
	items     map[string]ItemType
	digest    string
}

// Builder accumulates catalog entries during the load phase
type Builder struct {
	qualities map[string]Quality
	items     map[string]ItemType
	sealed    bool
}

// NewBuilder creates an empty catalog builder
func NewBuilder() *Builder {
	return &Builder{
		qualities: make(map[string]Quality),
		items:     make(map[string]ItemType),
	}
}

// AddQuality registers a quality definition
func (b *Builder) AddQuality(q Quality) error {
	if b.sealed {
		return &ErrBuilderSealed{}
	}
	if q.ID == "" {
		return &ErrInvalidEntry{Kind: "quality", ID: q.ID, Reason: "empty id"}
	}
	if _, exists := b.qualities[q.ID]; exists {
		return &ErrDuplicateEntry{Kind: "quality", ID: q.ID}
	}
	if q.Name == "" {
		q.Name = q.ID
	}
	b.qualities[q.ID] = q
	return nil
}

// AddItemType registers an item type with its intrinsic qualities.
// Quality ids are not cross-checked here; unknown ones surface as diagnostics
// when declarations are validated.
func (b *Builder) AddItemType(it ItemType) error {
	if b.sealed {
		return &ErrBuilderSealed{}
	}
	if it.ID == "" {
		return &ErrInvalidEntry{Kind: "item", ID: it.ID, Reason: "empty id"}
	}
	if _, exists := b.items[it.ID]; exists {
		return &ErrDuplicateEntry{Kind: "item", ID: it.ID}
	}
	for _, ql := range it.Qualities {
		if ql.Quality == "" {
			return &ErrInvalidEntry{Kind: "item", ID: it.ID, Reason: "quality with empty id"}
		}
		if ql.Level < 0 {
			return &ErrInvalidEntry{Kind: "item", ID: it.ID, Reason: "negative quality level for " + ql.Quality}
		}
	}

	qualities := make([]QualityLevel, len(it.Qualities))
	copy(qualities, it.Qualities)
	it.Qualities = qualities
	b.items[it.ID] = it
	return nil
}

// Build seals the builder and returns the immutable catalog
func (b *Builder) Build() *Catalog {
	b.sealed = true
	c := &Catalog{
		qualities: b.qualities,
		items:     b.items,
	}
	c.digest = c.computeDigest()
	return c
}

// QualityName returns the display name of a quality, or the id itself when unknown
func (c *Catalog) QualityName(id string) string {
	if q, ok := c.qualities[id]; ok {
		return q.Name
	}
	return id
}

// HasQuality reports whether the quality id is defined
func (c *Catalog) HasQuality(id string) bool {
	_, ok := c.qualities[id]
	return ok
}

// ItemExists reports whether the item type is defined
func (c *Catalog) ItemExists(id string) bool {
	_, ok := c.items[id]
	return ok
}

// ItemName returns the display name of an item type, or the id itself when unknown
func (c *Catalog) ItemName(id string) string {
	if it, ok := c.items[id]; ok && it.Name != "" {
		return it.Name
	}
	return id
}

// IntrinsicQualities returns a copy of the qualities the item type carries.
// Unknown item types carry none.
func (c *Catalog) IntrinsicQualities(id string) []QualityLevel {
	it, ok := c.items[id]
	if !ok || len(it.Qualities) == 0 {
		return nil
	}
	out := make([]QualityLevel, len(it.Qualities))
	copy(out, it.Qualities)
	return out
}

// QualityLevel returns the level at which the item type carries a quality
func (c *Catalog) QualityLevel(itemID, qualityID string) (int, bool) {
	it, ok := c.items[itemID]
	if !ok {
		return 0, false
	}
	for _, ql := range it.Qualities {
		if ql.Quality == qualityID {
			return ql.Level, true
		}
	}
	return 0, false
}

// QualityIDs returns all quality ids in sorted order
func (c *Catalog) QualityIDs() []string {
	ids := make([]string, 0, len(c.qualities))
	for id := range c.qualities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ItemIDs returns all item type ids in sorted order
func (c *Catalog) ItemIDs() []string {
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Digest identifies the catalog contents independent of insertion order
func (c *Catalog) Digest() string {
	return c.digest
}

func (c *Catalog) computeDigest() string {
	var sb strings.Builder
	for _, id := range c.QualityIDs() {
		sb.WriteString("q:")
		sb.WriteString(id)
		sb.WriteByte('=')
		sb.WriteString(c.qualities[id].Name)
		sb.WriteByte('\n')
	}
	for _, id := range c.ItemIDs() {
		it := c.items[id]
		sb.WriteString("i:")
		sb.WriteString(id)
		for _, ql := range it.Qualities {
			sb.WriteByte(' ')
			sb.WriteString(ql.Quality)
			sb.WriteByte('@')
			sb.WriteString(strconv.Itoa(ql.Level))
		}
		sb.WriteByte('\n')
	}
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
