package middleware

import (
	"net/http"

	"bersih-backend/internal/config"
	"github.com/rs/cors"
)

// NewCORS builds the CORS layer from the configured origin allowlist.
// Preflight responses are cached for five minutes.
func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
