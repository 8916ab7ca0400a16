package enums

// WeatherCondition is the coarse sky condition shown on a weather card.
type WeatherCondition string

const (
	WeatherConditionSunny        WeatherCondition = "sunny"
	WeatherConditionRainy        WeatherCondition = "rainy"
	WeatherConditionCloudy       WeatherCondition = "cloudy"
	WeatherConditionPartlyCloudy WeatherCondition = "partly-cloudy"
)

// String implements fmt.Stringer.
func (w WeatherCondition) String() string {
	return string(w)
}
