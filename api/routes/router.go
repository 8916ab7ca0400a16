package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kisanmitra/kisanmitra/api/controllers"
	"github.com/kisanmitra/kisanmitra/api/middleware"
	"github.com/kisanmitra/kisanmitra/api/responses"
	"github.com/kisanmitra/kisanmitra/internal/farmdata"
	"github.com/kisanmitra/kisanmitra/pkg/config"
	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
	"github.com/kisanmitra/kisanmitra/pkg/logger"
	"github.com/kisanmitra/kisanmitra/pkg/metrics"
)

// NewRouter serves the farm API from repo. metricsHandler is mounted at
// /metrics when non-nil.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	repo *farmdata.Repository,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Server.CORSOrigins),
		httpMetrics.Middleware,
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "method not allowed").
			WithDetails(map[string]any{"method": req.Method}))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, repo))
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/weather", func(r chi.Router) {
			r.Get("/", controllers.WeatherCurrent(repo, logg))
			r.Get("/forecast", controllers.WeatherForecast(repo, logg))
			r.Get("/farming-advisory", controllers.WeatherAdvisory(repo, logg))
		})
		r.Route("/crops", func(r chi.Router) {
			r.Get("/", controllers.CropsList(repo, logg))
			r.Post("/", controllers.CropCreate(repo, logg))
			r.Put("/{cropId}", controllers.CropUpdate(repo, logg))
		})
		r.Get("/advice", controllers.AdviceList(repo, logg))
		r.Route("/user", func(r chi.Router) {
			r.Get("/{userId}", controllers.UserProfile(repo, logg))
			r.Put("/{userId}", controllers.UserUpdate(repo, logg))
		})
	})

	return r
}
