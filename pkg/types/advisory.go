package types

import "github.com/kisanmitra/kisanmitra/pkg/enums"

// WeatherAlert flags a reading that needs attention in the field.
type WeatherAlert struct {
	Level   enums.AlertLevel `json:"type"`
	Message string           `json:"message"`
}

// DailyActivity suggests the main field activity for one forecast day.
type DailyActivity struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	Activity    string  `json:"activity"`
}

// FarmingAdvisory is the weather-driven advisory for a location.
type FarmingAdvisory struct {
	Date     string          `json:"date"`
	Current  WeatherData     `json:"currentConditions"`
	Advice   []string        `json:"advice"`
	Activity string          `json:"activity"`
	Alerts   []WeatherAlert  `json:"alerts"`
	Outlook  []DailyActivity `json:"outlook,omitempty"`
}
