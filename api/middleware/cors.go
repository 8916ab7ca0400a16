package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:8081",  // expo dev server
	"http://localhost:19006", // expo web
}

// CORS allows the mobile app's development origins, or the configured ones.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id", "X-Requested-With"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}).Handler
}
