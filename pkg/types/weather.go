package types

// WeatherData is one weather reading as served by the weather endpoints.
type WeatherData struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	WindSpeed   float64 `json:"windSpeed"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// WeatherForecast groups daily and weekly readings.
type WeatherForecast struct {
	Daily  []WeatherData `json:"daily"`
	Weekly []WeatherData `json:"weekly"`
}
