package controllers

import (
	"net/http"

	"github.com/kisanmitra/kisanmitra/api/responses"
	"github.com/kisanmitra/kisanmitra/pkg/config"
	pkgerrors "github.com/kisanmitra/kisanmitra/pkg/errors"
	"github.com/kisanmitra/kisanmitra/pkg/logger"
)

const envHeader = "X-KisanMitra-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the data store is wired.
func HealthReady(cfg *config.Config, logg *logger.Logger, store CropStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "data store unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
