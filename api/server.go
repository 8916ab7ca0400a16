package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kisanmitra/kisanmitra/pkg/config"
	"github.com/kisanmitra/kisanmitra/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// NewServer builds the HTTP server for handler on the configured port.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
	}
}

// Serve runs server until ctx is done, then drains in-flight requests.
func Serve(ctx context.Context, server *http.Server, logg *logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if logg != nil {
		logg.Info(ctx, "server shutting down")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
