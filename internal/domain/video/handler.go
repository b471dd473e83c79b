package video

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/portfolio/portfolio-api/internal/pkg/errorhandler"
	"github.com/portfolio/portfolio-api/internal/pkg/response"
	"github.com/portfolio/portfolio-api/internal/pkg/validator"
)

// Handler handles video HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates video handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/videos
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	videos, err := h.service.List(r.Context())
	if err != nil {
		errorhandler.Public(r.Context(), w, "video.list", "Failed to load videos", err)
		return
	}
	response.JSON(w, http.StatusOK, videos)
}

// Create handles POST /api/videos
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	v, err := h.service.Create(r.Context(), &req)
	if err != nil {
		errorhandler.Internal(r.Context(), w, "video.create", err)
		return
	}

	response.Created(w, "Video added", v)
}

// Update handles PUT /api/videos/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid video ID")
		return
	}

	var req UpdateRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := req.Validate(); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	v, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			response.NotFound(w, "Video not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "video.update", err)
		return
	}

	response.OK(w, "Video updated", v)
}

// Delete handles DELETE /api/videos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid video ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			response.NotFound(w, "Video not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "video.delete", err)
		return
	}

	response.OK(w, "Video deleted", nil)
}

// Reorder handles PATCH /api/videos/reorder
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if err := h.service.Reorder(r.Context(), req.IDs); err != nil {
		errorhandler.Internal(r.Context(), w, "video.reorder", err)
		return
	}

	response.OK(w, "Videos reordered", nil)
}
