package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/stockbook-app/stockbook/internal/server/metrics"
)

// NewRouter mounts all routes on a chi router. Auth endpoints are public;
// everything under /api besides them requires a valid access token.
func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(requestLogger(h.logger))

	r.Get("/healthz", h.healthz)
	r.Get("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
		r.Post("/auth/refresh", h.refresh)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware)

			r.Get("/items", h.listItems)
			r.Post("/items", h.createItem)
			r.Get("/items/{id}/records", h.listRecords)
			r.Post("/items/{id}/records", h.createRecord)
			r.Get("/items/{id}/stats", h.itemStats)
			r.Post("/images/presign", h.presignImage)
		})
	})

	return r
}
