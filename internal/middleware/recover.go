package middleware

import (
	"net/http"
	"runtime/debug"

	"sensory-safari-api/internal/platform/logger"
)

// Recover reemplaza a chimw.Recoverer: loguea el panic con el logger del
// request y responde 500 en JSON.
func Recover(fallback logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.FromContext(r.Context(), fallback).Error("panic recovered", map[string]any{
					"panic": rec,
					"path":  r.URL.Path,
					"stack": string(debug.Stack()),
				})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"message":"internal error"}`))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
