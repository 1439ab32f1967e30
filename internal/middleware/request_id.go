package middleware

import (
	"net/http"

	"sensory-safari-api/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID deja en el contexto un logger con el request_id que generó
// chimw.RequestID (que debe ir antes en la cadena).
func RequestID(base logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := base
			if id := chimw.GetReqID(r.Context()); id != "" {
				l = base.With(map[string]any{"request_id": id})
			}
			next.ServeHTTP(w, r.WithContext(logger.WithContext(r.Context(), l)))
		})
	}
}
