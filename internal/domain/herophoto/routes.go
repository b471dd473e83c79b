package herophoto

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns hero photo router
func (h *Handler) Routes(adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)

	r.Group(func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Post("/", h.Create)
		r.Patch("/reorder", h.Reorder)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
