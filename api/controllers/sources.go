package controllers

import (
	"context"

	"github.com/kisanmitra/kisanmitra/internal/farmdata"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

// WeatherSource synthesizes weather readings.
type WeatherSource interface {
	Weather(ctx context.Context, lat, lon float64, dayOffset int) types.WeatherData
	Forecast(ctx context.Context, lat, lon float64, days int) []types.WeatherData
}

type CropStore interface {
	ListCrops(ctx context.Context, userID int64) []types.CropInfo
	CreateCrop(ctx context.Context, input types.NewCrop) (types.CropInfo, error)
	UpdateCrop(ctx context.Context, id string, patch types.CropPatch) (types.CropInfo, error)
}

type AdviceSource interface {
	ListAdvice(ctx context.Context, filter farmdata.AdviceFilter) []types.AgricultureAdvice
}

type UserStore interface {
	GetUser(ctx context.Context, id int64) (types.User, error)
	UpdateUser(ctx context.Context, id int64, patch types.UserPatch) (types.User, error)
}

var (
	_ WeatherSource = (*farmdata.Repository)(nil)
	_ CropStore     = (*farmdata.Repository)(nil)
	_ AdviceSource  = (*farmdata.Repository)(nil)
	_ UserStore     = (*farmdata.Repository)(nil)
)
