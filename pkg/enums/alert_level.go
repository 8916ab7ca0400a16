package enums

import "fmt"

// AlertLevel grades a weather alert shown to farmers.
type AlertLevel string

const (
	AlertLevelInfo    AlertLevel = "info"
	AlertLevelCaution AlertLevel = "caution"
	AlertLevelWarning AlertLevel = "warning"
)

var validAlertLevels = []AlertLevel{
	AlertLevelInfo,
	AlertLevelCaution,
	AlertLevelWarning,
}

// String implements fmt.Stringer.
func (a AlertLevel) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AlertLevel.
func (a AlertLevel) IsValid() bool {
	for _, candidate := range validAlertLevels {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAlertLevel converts raw input into an AlertLevel.
func ParseAlertLevel(value string) (AlertLevel, error) {
	for _, candidate := range validAlertLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid alert level %q", value)
}
