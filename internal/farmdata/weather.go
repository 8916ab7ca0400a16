package farmdata

import (
	"context"
	"math"

	"github.com/kisanmitra/kisanmitra/pkg/types"
)

// MaxForecastDays bounds how far ahead a forecast may reach.
const MaxForecastDays = 14

// Weather synthesizes the reading for a location dayOffset days from today.
// The same inputs on the same date always produce the same reading.
func (r *Repository) Weather(_ context.Context, lat, lon float64, dayOffset int) types.WeatherData {
	date := r.today().AddDate(0, 0, dayOffset)
	seed := float64(date.YearDay()) + lat*0.37 + lon*0.11

	temperature := 34 - math.Abs(lat)*0.35 + 4*math.Sin(seed)
	humidity := clamp(55+30*math.Sin(seed*0.7+lon*0.05), 10, 100)

	rainfall := 0.0
	if wave := math.Sin(seed * 1.3); humidity > 70 && wave > 0.2 {
		rainfall = (humidity - 70) * wave * 1.5
	}
	windSpeed := 6 + 9*math.Abs(math.Cos(seed*0.9))

	return types.WeatherData{
		Temperature: round1(temperature),
		Humidity:    round1(humidity),
		Rainfall:    round1(rainfall),
		WindSpeed:   round1(windSpeed),
		Description: describe(humidity, rainfall),
		Date:        date.Format(dateLayout),
	}
}

// Forecast returns one reading per day starting today.
func (r *Repository) Forecast(ctx context.Context, lat, lon float64, days int) []types.WeatherData {
	if days <= 0 {
		days = 7
	}
	if days > MaxForecastDays {
		days = MaxForecastDays
	}
	out := make([]types.WeatherData, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, r.Weather(ctx, lat, lon, i))
	}
	return out
}

func describe(humidity, rainfall float64) string {
	switch {
	case rainfall >= 10:
		return "Heavy rain"
	case rainfall > 0:
		return "Light rain"
	case humidity >= 65:
		return "Cloudy"
	case humidity >= 45:
		return "Partly sunny"
	default:
		return "Clear sky"
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
