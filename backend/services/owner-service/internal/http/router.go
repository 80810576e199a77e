package httpserver

import (
	"net/http"

	"isuride/backend/services/owner-service/internal/http/middleware"
)

// Routes groups handlers.
type Routes struct {
	OwnerChairs http.Handler
	Health      http.HandlerFunc
	Ready       http.HandlerFunc
}

// NewRouter registers endpoints. ownerAuth guards the owner API.
func NewRouter(routes Routes, ownerAuth func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()
	if routes.OwnerChairs != nil {
		mux.Handle("/api/owner/chairs", method(http.MethodGet, middleware.Chain(routes.OwnerChairs, ownerAuth)))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	if routes.Ready != nil {
		mux.Handle("/ready", method(http.MethodGet, routes.Ready))
	}
	return mux
}

func method(expected string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
