package inventory

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/craftreq/internal/domain/catalog"
)

// QualitySource resolves the intrinsic qualities of an item type
type QualitySource interface {
	IntrinsicQualities(itemType string) []catalog.QualityLevel
}

// Stack is the quantity of one item type held in an inventory
type Stack struct {
	Type    string
	Units   int
	Charges int
}

// Snapshot is an immutable view of a crafting inventory at one instant.
// It answers the unit, charge and quality queries the requirement engine needs.
type Snapshot struct {
	stacks    map[string]Stack
	qualities QualitySource
}

// NewSnapshot creates a snapshot, merging stacks of the same item type
func NewSnapshot(qualities QualitySource, stacks ...Stack) (*Snapshot, error) {
	merged := make(map[string]Stack, len(stacks))
	for _, s := range stacks {
		if s.Type == "" {
			return nil, fmt.Errorf("stack item type cannot be empty")
		}
		if s.Units < 0 || s.Charges < 0 {
			return nil, fmt.Errorf("stack %s cannot have negative quantities", s.Type)
		}
		cur := merged[s.Type]
		cur.Type = s.Type
		cur.Units += s.Units
		cur.Charges += s.Charges
		merged[s.Type] = cur
	}

	return &Snapshot{stacks: merged, qualities: qualities}, nil
}

// Units returns the discrete units of the item type (0 if absent)
func (s *Snapshot) Units(itemType string) int {
	return s.stacks[itemType].Units
}

// Charges returns the charges of the item type (0 if absent)
func (s *Snapshot) Charges(itemType string) int {
	return s.stacks[itemType].Charges
}

// HasItem checks for at least quantity units of the item type
func (s *Snapshot) HasItem(itemType string, quantity int) bool {
	return s.Units(itemType) >= quantity
}

// HasCharges checks for at least charges charges of the item type
func (s *Snapshot) HasCharges(itemType string, charges int) bool {
	return s.Charges(itemType) >= charges
}

// HasQuality counts units of every item type carrying the quality at level or above
func (s *Snapshot) HasQuality(quality string, level int, quantity int) bool {
	if s.qualities == nil {
		return quantity <= 0
	}
	total := 0
	for _, stack := range s.stacks {
		if stack.Units == 0 {
			continue
		}
		for _, ql := range s.qualities.IntrinsicQualities(stack.Type) {
			if ql.Quality == quality && ql.Level >= level {
				total += stack.Units
				break
			}
		}
	}
	return total >= quantity
}

// Stacks returns the held stacks ordered by item type
func (s *Snapshot) Stacks() []Stack {
	out := make([]Stack, 0, len(s.stacks))
	for _, stack := range s.stacks {
		out = append(out, stack)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// IsEmpty checks if the inventory holds nothing
func (s *Snapshot) IsEmpty() bool {
	for _, stack := range s.stacks {
		if stack.Units > 0 || stack.Charges > 0 {
			return false
		}
	}
	return true
}

func (s *Snapshot) String() string {
	return fmt.Sprintf("Inventory(%d stacks)", len(s.stacks))
}
