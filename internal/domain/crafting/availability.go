package crafting

import "fmt"

// Availability is the resolved status of one requirement alternative
type Availability int

const (
	// Unavailable means the inventory cannot fulfil the alternative
	Unavailable Availability = -1

	// Insufficient means the alternative is fulfillable on its own but not jointly
	// with a competing tool or quality role for the same item type
	Insufficient Availability = 0

	// Available means the alternative is directly fulfillable
	Available Availability = 1
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	case Insufficient:
		return "insufficient"
	default:
		return fmt.Sprintf("availability(%d)", int(a))
	}
}

// MarshalText renders the availability by name in JSON documents
func (a Availability) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a name produced by MarshalText
func (a *Availability) UnmarshalText(text []byte) error {
	switch string(text) {
	case "available":
		*a = Available
	case "unavailable":
		*a = Unavailable
	case "insufficient":
		*a = Insufficient
	default:
		return fmt.Errorf("unknown availability: %q", string(text))
	}
	return nil
}

func availabilityOf(ok bool) Availability {
	if ok {
		return Available
	}
	return Unavailable
}

// Category names one of the three alternative-group lists of a requirement set
type Category string

const (
	CategoryComponents Category = "components"
	CategoryTools      Category = "tools"
	CategoryQualities  Category = "qualities"

	// CategorySkills only appears in errors and diagnostics; skills are not grouped
	CategorySkills Category = "skills"
)
