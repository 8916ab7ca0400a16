package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kisanmitra/kisanmitra/api"
	"github.com/kisanmitra/kisanmitra/api/routes"
	"github.com/kisanmitra/kisanmitra/internal/farmdata"
	"github.com/kisanmitra/kisanmitra/pkg/config"
	"github.com/kisanmitra/kisanmitra/pkg/logger"
	"github.com/kisanmitra/kisanmitra/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "devapi"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "devapi",
		Version:     cfg.App.Version,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		NoColor:     cfg.App.LogNoColor,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	repo := farmdata.NewSeededRepository()
	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	router := routes.NewRouter(cfg, logg, repo, httpMetrics, promhttp.Handler())

	server := api.NewServer(cfg, router)
	logg.Info(logg.WithField(ctx, "addr", server.Addr), "starting dev api server")

	if err := api.Serve(ctx, server, logg); err != nil {
		logg.Error(ctx, "server stopped unexpectedly", err)
		os.Exit(1)
	}
}
