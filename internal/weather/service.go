package weather

import (
	"context"
	"net/url"
	"strconv"

	"github.com/kisanmitra/kisanmitra/pkg/apiclient"
	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

// DefaultForecastDays is used when a forecast is requested without a positive day count.
const DefaultForecastDays = 7

// Service reads weather for a pair of coordinates.
type Service interface {
	Current(ctx context.Context, lat, lon float64) apiclient.Result[types.WeatherData]
	Forecast(ctx context.Context, lat, lon float64, days int) apiclient.Result[[]types.WeatherData]
	Advisory(ctx context.Context, lat, lon float64, days int) apiclient.Result[types.FarmingAdvisory]
}

type service struct {
	client *apiclient.Client
}

// NewService builds a weather service on top of the shared API client.
func NewService(client *apiclient.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "api client is required")
	}
	return &service{client: client}, nil
}

// Current issues GET /api/weather?lat=&lon=.
func (s *service) Current(ctx context.Context, lat, lon float64) apiclient.Result[types.WeatherData] {
	path := apiclient.WithQuery(s.client.Endpoints().Path(apiclient.ResourceWeather), coordinates(lat, lon))
	return apiclient.Do[types.WeatherData](ctx, s.client, path, apiclient.RequestOptions{Operation: "weather.current"})
}

// Forecast issues GET /api/weather/forecast?lat=&lon=&days=.
func (s *service) Forecast(ctx context.Context, lat, lon float64, days int) apiclient.Result[[]types.WeatherData] {
	query := coordinates(lat, lon)
	query.Set("days", strconv.Itoa(forecastDays(days)))
	path := apiclient.WithQuery(s.client.Endpoints().Path(apiclient.ResourceWeather, "forecast"), query)
	return apiclient.Do[[]types.WeatherData](ctx, s.client, path, apiclient.RequestOptions{Operation: "weather.forecast"})
}

// Advisory issues GET /api/weather/farming-advisory?lat=&lon=&days=.
func (s *service) Advisory(ctx context.Context, lat, lon float64, days int) apiclient.Result[types.FarmingAdvisory] {
	query := coordinates(lat, lon)
	query.Set("days", strconv.Itoa(forecastDays(days)))
	path := apiclient.WithQuery(s.client.Endpoints().Path(apiclient.ResourceWeather, "farming-advisory"), query)
	return apiclient.Do[types.FarmingAdvisory](ctx, s.client, path, apiclient.RequestOptions{Operation: "weather.advisory"})
}

func forecastDays(days int) int {
	if days <= 0 {
		return DefaultForecastDays
	}
	return days
}

func coordinates(lat, lon float64) url.Values {
	query := url.Values{}
	query.Set("lat", formatCoordinate(lat))
	query.Set("lon", formatCoordinate(lon))
	return query
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
