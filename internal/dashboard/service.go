package dashboard

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/kisanmitra/kisanmitra/internal/advice"
	"github.com/kisanmitra/kisanmitra/internal/advisory"
	"github.com/kisanmitra/kisanmitra/internal/crops"
	"github.com/kisanmitra/kisanmitra/internal/weather"
	"github.com/kisanmitra/kisanmitra/pkg/apiclient"
	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

// ServiceParams groups dependencies for the dashboard service.
type ServiceParams struct {
	Weather weather.Service
	Crops   crops.Service
	Advice  advice.Service
}

// Service assembles the home screen data for one farmer.
type Service struct {
	weather weather.Service
	crops   crops.Service
	advice  advice.Service
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Weather == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "weather service is required")
	}
	if params.Crops == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "crops service is required")
	}
	if params.Advice == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "advice service is required")
	}
	return &Service{
		weather: params.Weather,
		crops:   params.Crops,
		advice:  params.Advice,
	}, nil
}

// Request selects what to load. Weather is loaded only when HasLocation is
// set; crops and advice are skipped when UserID is zero.
type Request struct {
	UserID       int64
	HasLocation  bool
	Latitude     float64
	Longitude    float64
	ForecastDays int
}

// Load fetches every requested section concurrently. Each section succeeds or
// fails on its own; a failed section never cancels the others.
func (s *Service) Load(ctx context.Context, req Request) Snapshot {
	var snap Snapshot
	var g errgroup.Group

	if req.HasLocation {
		g.Go(func() error {
			res := s.weather.Current(ctx, req.Latitude, req.Longitude)
			snap.Weather = &res
			return nil
		})
		g.Go(func() error {
			res := s.weather.Forecast(ctx, req.Latitude, req.Longitude, req.ForecastDays)
			snap.Forecast = &res
			return nil
		})
	}
	if req.UserID != 0 {
		g.Go(func() error {
			res := s.crops.List(ctx, req.UserID)
			snap.Crops = &res
			return nil
		})
		g.Go(func() error {
			res := s.advice.ForUser(ctx, req.UserID)
			snap.Advice = &res
			return nil
		})
	}
	_ = g.Wait()

	if snap.Weather != nil {
		if current, ok := snap.Weather.Data(); ok {
			card := NewWeatherCard(current)
			snap.Card = &card
			snap.Alerts = advisory.Alerts(current)
		}
	}
	return snap
}

// Snapshot holds each section's result untouched. A nil section was not requested.
type Snapshot struct {
	Weather  *apiclient.Result[types.WeatherData]         `json:"weather,omitempty"`
	Forecast *apiclient.Result[[]types.WeatherData]       `json:"forecast,omitempty"`
	Crops    *apiclient.Result[[]types.CropInfo]          `json:"crops,omitempty"`
	Advice   *apiclient.Result[[]types.AgricultureAdvice] `json:"advice,omitempty"`
	Card     *WeatherCard                                 `json:"card,omitempty"`
	Alerts   []types.WeatherAlert                         `json:"alerts,omitempty"`
}

// Errors lists the displayable messages of the failed sections.
func (s Snapshot) Errors() []string {
	var msgs []string
	add := func(f *apiclient.Failure, fallback string) {
		if f == nil {
			return
		}
		msg := f.Message
		if msg == "" {
			msg = fallback
		}
		msgs = append(msgs, msg)
	}
	if s.Weather != nil {
		add(s.Weather.Failure(), "Failed to fetch weather data")
	}
	if s.Forecast != nil {
		add(s.Forecast.Failure(), "Failed to fetch weather forecast")
	}
	if s.Crops != nil {
		add(s.Crops.Failure(), "Failed to fetch crops")
	}
	if s.Advice != nil {
		add(s.Advice.Failure(), "Failed to fetch advice")
	}
	return msgs
}

// PriorityAdvice returns the loaded advice ordered by urgency, most urgent
// first, keeping the server order within an urgency level.
func (s Snapshot) PriorityAdvice() []types.AgricultureAdvice {
	if s.Advice == nil {
		return nil
	}
	items, ok := s.Advice.Data()
	if !ok {
		return nil
	}
	sorted := append([]types.AgricultureAdvice(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Urgency.Rank() > sorted[j].Urgency.Rank()
	})
	return sorted
}
