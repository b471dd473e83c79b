package herophoto

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

// Handler handles hero photo HTTP requests
type Handler struct {
	service   *Service
	maxUpload int64
}

// NewHandler creates hero photo handler
func NewHandler(service *Service, maxUpload int64) *Handler {
	return &Handler{service: service, maxUpload: maxUpload}
}

// List handles GET /api/hero-photos
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	photos, err := h.service.List(r.Context())
	if err != nil {
		errorhandler.Public(r.Context(), w, "herophoto.list", "Failed to load hero photos", err)
		return
	}
	response.JSON(w, http.StatusOK, photos)
}

// Create handles POST /api/hero-photos
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := upload.ParseForm(w, r, h.maxUpload); err != nil {
		if !errorhandler.Upload(r.Context(), w, err) {
			response.BadRequest(w, "Invalid form data")
		}
		return
	}

	x, y, errs := parsePositions(upload.OptionalValue(r, "positionX"), upload.OptionalValue(r, "positionY"))
	if errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}
	req := CreateRequest{Alt: r.FormValue("alt"), PositionX: x, PositionY: y}

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
		errorhandler.Internal(r.Context(), w, "herophoto.create", err)
		return
	}

	response.Created(w, "Hero photo added", p)
}

// Update handles PUT /api/hero-photos/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid hero photo ID")
		return
	}

	if err := upload.ParseForm(w, r, h.maxUpload); err != nil {
		if !errorhandler.Upload(r.Context(), w, err) {
			response.BadRequest(w, "Invalid form data")
		}
		return
	}

	x, y, errs := parsePositions(upload.OptionalValue(r, "positionX"), upload.OptionalValue(r, "positionY"))
	if errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}
	req := UpdateRequest{Alt: upload.OptionalValue(r, "alt"), PositionX: x, PositionY: y}

	image, done, err := upload.FormFile(r, "image")
	defer done()
	if err != nil {
		response.BadRequest(w, "Invalid image upload")
		return
	}

	p, err := h.service.Update(r.Context(), id, &req, image)
	if err != nil {
		switch {
		case errors.Is(err, ErrHeroPhotoNotFound):
			response.NotFound(w, "Hero photo not found")
		case errorhandler.Upload(r.Context(), w, err):
		default:
			errorhandler.Internal(r.Context(), w, "herophoto.update", err)
		}
		return
	}

	response.OK(w, "Hero photo updated", p)
}

// Delete handles DELETE /api/hero-photos/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid hero photo ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrHeroPhotoNotFound) {
			response.NotFound(w, "Hero photo not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "herophoto.delete", err)
		return
	}

	response.OK(w, "Hero photo deleted", nil)
}

// Reorder handles PATCH /api/hero-photos/reorder
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
		errorhandler.Internal(r.Context(), w, "herophoto.reorder", err)
		return
	}

	response.OK(w, "Hero photos reordered", nil)
}
