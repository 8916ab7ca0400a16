package enums

import "fmt"

// Urgency ranks how soon a piece of advice should be acted on.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

var validUrgencies = []Urgency{
	UrgencyLow,
	UrgencyMedium,
	UrgencyHigh,
}

// String implements fmt.Stringer.
func (u Urgency) String() string {
	return string(u)
}

// IsValid reports whether the value is a known Urgency.
func (u Urgency) IsValid() bool {
	for _, candidate := range validUrgencies {
		if candidate == u {
			return true
		}
	}
	return false
}

// Rank orders urgencies from low (1) to high (3); unknown values rank 0.
func (u Urgency) Rank() int {
	for i, candidate := range validUrgencies {
		if candidate == u {
			return i + 1
		}
	}
	return 0
}

// ParseUrgency converts raw input into an Urgency.
func ParseUrgency(value string) (Urgency, error) {
	for _, candidate := range validUrgencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid urgency %q", value)
}
