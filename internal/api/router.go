package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP routing tree for the point API.
func NewRouter(svc PointService) http.Handler {
	h := NewHandler(svc)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/point", func(r chi.Router) {
		r.Get("/{id}", h.GetPointHandler)
		r.Get("/{id}/histories", h.GetHistoryHandler)
		r.Patch("/{id}/charge", h.ChargeHandler)
		r.Patch("/{id}/use", h.UseHandler)
	})

	return r
}
