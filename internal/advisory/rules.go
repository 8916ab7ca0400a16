// Package advisory turns weather readings into rule-based farming guidance.
package advisory

import (
	"strings"

	"github.com/kisanmitra/kisanmitra/pkg/enums"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

const (
	hotTemperature     = 35.0
	coolTemperature    = 15.0
	extremeHeat        = 40.0
	frostTemperature   = 5.0
	warmSunnyDay       = 30.0
	humidHumidity      = 80.0
	dryHumidity        = 40.0
	veryHumidHumidity  = 90.0
	highWindSpeed      = 25.0
	heavyRainfall      = 50.0
	favorableCondition = "Weather conditions are favorable for farming"
)

// Build assembles the advisory for the current reading and an optional outlook.
func Build(current types.WeatherData, forecast []types.WeatherData) types.FarmingAdvisory {
	out := types.FarmingAdvisory{
		Date:     current.Date,
		Current:  current,
		Advice:   Advice(current),
		Activity: Activity(current.Description, current.Temperature),
		Alerts:   Alerts(current),
	}
	for _, day := range forecast {
		out.Outlook = append(out.Outlook, types.DailyActivity{
			Date:        day.Date,
			Description: day.Description,
			Temperature: day.Temperature,
			Activity:    Activity(day.Description, day.Temperature),
		})
	}
	return out
}

// Advice lists field guidance for temperature, humidity and sky condition.
func Advice(w types.WeatherData) []string {
	var advice []string

	switch {
	case w.Temperature > hotTemperature:
		advice = append(advice, "High temperature - Increase irrigation frequency", "Provide shade for sensitive crops")
	case w.Temperature < coolTemperature:
		advice = append(advice, "Cool weather - Protect crops from frost", "Consider using crop covers")
	default:
		advice = append(advice, "Optimal temperature for most farming activities")
	}

	switch {
	case w.Humidity > humidHumidity:
		advice = append(advice, "High humidity - Monitor for fungal diseases", "Ensure good air circulation")
	case w.Humidity < dryHumidity:
		advice = append(advice, "Low humidity - Increase irrigation", "Use mulching to retain moisture")
	}

	switch condition := strings.ToLower(w.Description); {
	case isRainy(condition):
		advice = append(advice, "Rainy conditions - Avoid spraying operations", "Postpone heavy machinery work")
	case isSunny(condition):
		advice = append(advice, "Good conditions for harvesting", "Ideal for drying crops")
	}
	return advice
}

// Activity suggests the main field activity for a day.
func Activity(description string, temperature float64) string {
	condition := strings.ToLower(description)
	switch {
	case isRainy(condition):
		return "Indoor activities, check drainage systems"
	case isSunny(condition) && temperature > warmSunnyDay:
		return "Early morning irrigation, avoid midday work"
	case isSunny(condition):
		return "Ideal for harvesting and field preparation"
	case strings.Contains(condition, "cloud"):
		return "Good for transplanting and spraying operations"
	}
	return "Regular farming activities with weather monitoring"
}

// Alerts flags extreme readings. It always returns at least one alert.
func Alerts(w types.WeatherData) []types.WeatherAlert {
	var alerts []types.WeatherAlert
	add := func(level enums.AlertLevel, msg string) {
		alerts = append(alerts, types.WeatherAlert{Level: level, Message: msg})
	}

	if w.Temperature > extremeHeat {
		add(enums.AlertLevelWarning, "Extreme heat - Protect livestock and workers")
	}
	if w.Temperature < frostTemperature {
		add(enums.AlertLevelWarning, "Frost alert - Protect sensitive crops")
	}
	if w.WindSpeed > highWindSpeed {
		add(enums.AlertLevelCaution, "High winds - Avoid spraying operations")
	}
	if w.Rainfall > heavyRainfall {
		add(enums.AlertLevelInfo, "Heavy rainfall - Check field drainage")
	}
	if w.Humidity > veryHumidHumidity {
		add(enums.AlertLevelCaution, "Very high humidity - Monitor for plant diseases")
	}

	if len(alerts) == 0 {
		add(enums.AlertLevelInfo, favorableCondition)
	}
	return alerts
}

func isRainy(condition string) bool {
	return strings.Contains(condition, "rain")
}

// clear skies count as sunny, matching the weather card.
func isSunny(condition string) bool {
	return strings.Contains(condition, "sun") || strings.Contains(condition, "clear")
}
