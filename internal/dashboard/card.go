package dashboard

import (
	"math"
	"strings"

	"github.com/kisanmitra/kisanmitra/pkg/enums"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

// WeatherCard is the display-ready summary of a weather reading.
type WeatherCard struct {
	Condition   enums.WeatherCondition `json:"condition"`
	Temperature int                    `json:"temperature"`
	Description string                 `json:"description"`
	Humidity    float64                `json:"humidity"`
	WindSpeed   float64                `json:"windSpeed"`
	// Rainfall is nil when no rain was recorded.
	Rainfall *float64 `json:"rainfall,omitempty"`
	Date     string   `json:"date,omitempty"`
}

func NewWeatherCard(w types.WeatherData) WeatherCard {
	card := WeatherCard{
		Condition:   ConditionOf(w.Description),
		Temperature: int(math.Floor(w.Temperature + 0.5)),
		Description: w.Description,
		Humidity:    w.Humidity,
		WindSpeed:   w.WindSpeed,
		Date:        w.Date,
	}
	if w.Rainfall > 0 {
		rainfall := w.Rainfall
		card.Rainfall = &rainfall
	}
	return card
}

// ConditionOf maps a free-text description to a coarse condition. Rain wins
// over cloud, which wins over sun.
func ConditionOf(description string) enums.WeatherCondition {
	desc := strings.ToLower(description)
	switch {
	case strings.Contains(desc, "rain"):
		return enums.WeatherConditionRainy
	case strings.Contains(desc, "cloud"):
		return enums.WeatherConditionCloudy
	case strings.Contains(desc, "sun"), strings.Contains(desc, "clear"):
		return enums.WeatherConditionSunny
	default:
		return enums.WeatherConditionPartlyCloudy
	}
}
