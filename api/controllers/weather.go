package controllers

import (
	"net/http"

	"github.com/kisanmitra/kisanmitra/api/responses"
	"github.com/kisanmitra/kisanmitra/api/validators"
	"github.com/kisanmitra/kisanmitra/internal/advisory"
	"github.com/kisanmitra/kisanmitra/internal/farmdata"
	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
	"github.com/kisanmitra/kisanmitra/pkg/logger"
)

const defaultForecastDays = 7

func parseCoordinates(r *http.Request) (float64, float64, error) {
	lat, err := validators.ParseQueryCoordinate(r, "lat", 90)
	if err != nil {
		return 0, 0, err
	}
	lon, err := validators.ParseQueryCoordinate(r, "lon", 180)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}

// WeatherCurrent handles GET /api/weather?lat=&lon=.
func WeatherCurrent(src WeatherSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "weather source unavailable"))
			return
		}
		lat, lon, err := parseCoordinates(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, src.Weather(r.Context(), lat, lon, 0))
	}
}

// WeatherForecast handles GET /api/weather/forecast?lat=&lon=&days=.
func WeatherForecast(src WeatherSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "weather source unavailable"))
			return
		}
		lat, lon, err := parseCoordinates(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		days, err := validators.ParseQueryInt(r, "days", defaultForecastDays, 1, farmdata.MaxForecastDays)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, src.Forecast(r.Context(), lat, lon, days))
	}
}

// WeatherAdvisory handles GET /api/weather/farming-advisory?lat=&lon=&days=.
func WeatherAdvisory(src WeatherSource, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if src == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "weather source unavailable"))
			return
		}
		lat, lon, err := parseCoordinates(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		days, err := validators.ParseQueryInt(r, "days", defaultForecastDays, 1, farmdata.MaxForecastDays)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		current := src.Weather(r.Context(), lat, lon, 0)
		responses.WriteSuccess(w, advisory.Build(current, src.Forecast(r.Context(), lat, lon, days)))
	}
}
