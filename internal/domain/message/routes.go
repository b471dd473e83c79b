package message

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns message router. Submission is public and rate limited;
// the inbox requires the admin gate.
func (h *Handler) Routes(adminMiddleware, rateLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.With(rateLimit).Post("/", h.Submit)

	r.Group(func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Get("/", h.List)
		r.Patch("/{id}/read", h.ToggleRead)
		r.Delete("/{id}", h.Delete)
	})

	return r
}
