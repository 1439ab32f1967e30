package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS permite un único origen (el frontend). Sin origen configurado no se
// agregan headers y solo funcionan requests same-origin.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	origin := strings.TrimRight(strings.TrimSpace(allowedOrigin), "/")
	if origin == "" {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
