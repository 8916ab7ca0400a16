package weather

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/kisanmitra/kisanmitra/pkg/apiclient"
	"github.com/kisanmitra/kisanmitra/pkg/cache"
	"github.com/kisanmitra/kisanmitra/pkg/logger"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

// CachedService serves repeated weather reads from a Store. Only successful
// results are stored; failures always go back to the backend.
type CachedService struct {
	next  Service
	store cache.Store
	ttl   time.Duration
	logg  *logger.Logger
}

// NewCachedService wraps next. A nil store returns next unchanged.
func NewCachedService(next Service, store cache.Store, ttl time.Duration, logg *logger.Logger) Service {
	if store == nil {
		return next
	}
	return &CachedService{next: next, store: store, ttl: ttl, logg: logg}
}

func (c *CachedService) Current(ctx context.Context, lat, lon float64) apiclient.Result[types.WeatherData] {
	key := cache.Key("weather", "current", formatCoordinate(lat), formatCoordinate(lon))
	return readThrough(ctx, c, key, func() apiclient.Result[types.WeatherData] {
		return c.next.Current(ctx, lat, lon)
	})
}

func (c *CachedService) Forecast(ctx context.Context, lat, lon float64, days int) apiclient.Result[[]types.WeatherData] {
	days = forecastDays(days)
	key := cache.Key("weather", "forecast", formatCoordinate(lat), formatCoordinate(lon), strconv.Itoa(days))
	return readThrough(ctx, c, key, func() apiclient.Result[[]types.WeatherData] {
		return c.next.Forecast(ctx, lat, lon, days)
	})
}

func (c *CachedService) Advisory(ctx context.Context, lat, lon float64, days int) apiclient.Result[types.FarmingAdvisory] {
	days = forecastDays(days)
	key := cache.Key("weather", "advisory", formatCoordinate(lat), formatCoordinate(lon), strconv.Itoa(days))
	return readThrough(ctx, c, key, func() apiclient.Result[types.FarmingAdvisory] {
		return c.next.Advisory(ctx, lat, lon, days)
	})
}

func readThrough[T any](ctx context.Context, c *CachedService, key string, load func() apiclient.Result[T]) apiclient.Result[T] {
	raw, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.warn(ctx, "weather.cache.get_failed", key, err)
	case ok:
		var data T
		if err := json.Unmarshal(raw, &data); err == nil {
			return apiclient.Success(data)
		}
		_ = c.store.Delete(ctx, key)
	}

	result := load()
	data, ok := result.Data()
	if !ok {
		return result
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		c.warn(ctx, "weather.cache.encode_failed", key, err)
		return result
	}
	if err := c.store.Set(ctx, key, encoded, c.ttl); err != nil {
		c.warn(ctx, "weather.cache.set_failed", key, err)
	}
	return result
}

func (c *CachedService) warn(ctx context.Context, msg, key string, err error) {
	if c.logg == nil {
		return
	}
	ctx = c.logg.WithFields(ctx, map[string]any{"cache_key": key, "error": err.Error()})
	c.logg.Warn(ctx, msg)
}
