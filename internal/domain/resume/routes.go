package resume

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns resume router
func (h *Handler) Routes(adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Post("/", h.Upload)
		r.Delete("/", h.Delete)
	})

	return r
}
