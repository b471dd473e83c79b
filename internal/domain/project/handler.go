package project

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/portfolio/portfolio-api/internal/pkg/errorhandler"
	"github.com/portfolio/portfolio-api/internal/pkg/response"
	"github.com/portfolio/portfolio-api/internal/pkg/upload"
	"github.com/portfolio/portfolio-api/internal/pkg/validator"
)

// Handler handles project HTTP requests
type Handler struct {
	service   *Service
	maxUpload int64
}

// NewHandler creates project handler
func NewHandler(service *Service, maxUpload int64) *Handler {
	return &Handler{service: service, maxUpload: maxUpload}
}

// List handles GET /api/projects
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.List(r.Context())
	if err != nil {
		errorhandler.Public(r.Context(), w, "project.list", "Failed to load projects", err)
		return
	}
	response.JSON(w, http.StatusOK, projects)
}

// Create handles POST /api/projects
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := upload.ParseForm(w, r, h.maxUpload); err != nil {
		if !errorhandler.Upload(r.Context(), w, err) {
			response.BadRequest(w, "Invalid form data")
		}
		return
	}

	req := CreateRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ProjectURL:  r.FormValue("projectUrl"),
	}
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	image, done, err := upload.FormFile(r, "image")
	defer done()
	if err != nil {
		response.BadRequest(w, "Invalid image upload")
		return
	}
	if image == nil {
		response.BadRequest(w, "Image is required")
		return
	}

	p, err := h.service.Create(r.Context(), &req, image)
	if err != nil {
		if errorhandler.Upload(r.Context(), w, err) {
			return
		}
		errorhandler.Internal(r.Context(), w, "project.create", err)
		return
	}

	response.Created(w, "Project created", p)
}

// Update handles PUT /api/projects/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid project ID")
		return
	}

	if err := upload.ParseForm(w, r, h.maxUpload); err != nil {
		if !errorhandler.Upload(r.Context(), w, err) {
			response.BadRequest(w, "Invalid form data")
		}
		return
	}

	req := UpdateRequest{
		Title:       upload.OptionalValue(r, "title"),
		Description: upload.OptionalValue(r, "description"),
		ProjectURL:  upload.OptionalValue(r, "projectUrl"),
	}
	if errs := req.Validate(); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	image, done, err := upload.FormFile(r, "image")
	defer done()
	if err != nil {
		response.BadRequest(w, "Invalid image upload")
		return
	}

	p, err := h.service.Update(r.Context(), id, &req, image)
	if err != nil {
		switch {
		case errors.Is(err, ErrProjectNotFound):
			response.NotFound(w, "Project not found")
		case errorhandler.Upload(r.Context(), w, err):
		default:
			errorhandler.Internal(r.Context(), w, "project.update", err)
		}
		return
	}

	response.OK(w, "Project updated", p)
}

// Delete handles DELETE /api/projects/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid project ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			response.NotFound(w, "Project not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "project.delete", err)
		return
	}

	response.OK(w, "Project deleted", nil)
}

// Reorder handles PATCH /api/projects/reorder
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
		errorhandler.Internal(r.Context(), w, "project.reorder", err)
		return
	}

	response.OK(w, "Projects reordered", nil)
}
