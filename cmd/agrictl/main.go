package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kisanmitra/kisanmitra/internal/weather"
	"github.com/kisanmitra/kisanmitra/pkg/apiclient"
	"github.com/kisanmitra/kisanmitra/pkg/cache"
	"github.com/kisanmitra/kisanmitra/pkg/config"
	"github.com/kisanmitra/kisanmitra/pkg/logger"
	"github.com/kisanmitra/kisanmitra/pkg/metrics"
)

func main() {
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "agrictl", Output: os.Stderr})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	var opts options
	flag.StringVar(&opts.cmd, "cmd", "dashboard", "command: weather|forecast|advisory|crops|add-crop|update-crop|advice|user|dashboard|watch")
	flag.Float64Var(&opts.lat, "lat", 0, "latitude")
	flag.Float64Var(&opts.lon, "lon", 0, "longitude")
	flag.Int64Var(&opts.userID, "user", 0, "user id")
	flag.IntVar(&opts.days, "days", weather.DefaultForecastDays, "forecast days")
	flag.StringVar(&opts.category, "category", "", "advice category")
	flag.StringVar(&opts.id, "id", "", "crop id (for update-crop)")
	flag.StringVar(&opts.name, "name", "", "crop name")
	flag.StringVar(&opts.variety, "variety", "", "crop variety")
	flag.StringVar(&opts.planting, "planting", "", "planting date YYYY-MM-DD")
	flag.StringVar(&opts.harvest, "harvest", "", "harvest date YYYY-MM-DD")
	flag.StringVar(&opts.stage, "stage", "", "crop stage: planted|growing|flowering|harvest-ready|harvested")
	flag.DurationVar(&opts.interval, "interval", defaultWatchInterval, "refresh interval (for watch)")
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "lat" || f.Name == "lon" {
			opts.hasLoc = true
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "agrictl",
		Version:     cfg.App.Version,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		NoColor:     cfg.App.LogNoColor,
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"env": cfg.App.Env,
		"cmd": opts.cmd,
	})

	endpoints, err := cfg.API.Endpoints(cfg.App)
	requireResource(ctx, logg, "api endpoints", err)

	clientMetrics := metrics.NewClientMetrics(prometheus.DefaultRegisterer)
	client, err := apiclient.New(endpoints,
		apiclient.WithLogger(logg),
		apiclient.WithUserAgent(cfg.App.UserAgent()),
		apiclient.WithObserver(clientMetrics),
		apiclient.WithMaxResponseBytes(cfg.API.MaxResponseBytes),
	)
	requireResource(ctx, logg, "api client", err)

	store, closeStore, err := cache.Open(ctx, *cfg)
	requireResource(ctx, logg, "cache", err)
	defer func() {
		if err := closeStore(); err != nil {
			logg.Error(ctx, "failed to close cache", err)
		}
	}()

	weatherSvc, err := weather.NewService(client)
	requireResource(ctx, logg, "weather service", err)
	weatherSvc = weather.NewCachedService(weatherSvc, store, cfg.Cache.TTL, logg)

	a, err := newApp(client, weatherSvc, logg, os.Stdout)
	requireResource(ctx, logg, "services", err)

	if opts.cmd == "watch" && cfg.Metrics.Addr != "" {
		srv := serveMetrics(ctx, logg, cfg.Metrics.Addr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if err := a.run(ctx, opts); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		closeStore()
		os.Exit(1)
	}
}

func serveMetrics(ctx context.Context, logg *logger.Logger, addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logg.Info(logg.WithField(ctx, "addr", addr), "metrics server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "metrics server stopped", err)
		}
	}()
	return srv
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
