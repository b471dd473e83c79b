package resume

import (
	"errors"
	"net/http"

	"github.com/portfolio/portfolio-api/internal/pkg/errorhandler"
	"github.com/portfolio/portfolio-api/internal/pkg/response"
	"github.com/portfolio/portfolio-api/internal/pkg/upload"
)

// Handler handles resume HTTP requests
type Handler struct {
	service   *Service
	maxUpload int64
}

// NewHandler creates resume handler
func NewHandler(service *Service, maxUpload int64) *Handler {
	return &Handler{service: service, maxUpload: maxUpload}
}

// Get handles GET /api/resume
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Get(r.Context())
	if err != nil {
		if errors.Is(err, ErrResumeNotFound) {
			response.NotFound(w, "No resume found")
			return
		}
		errorhandler.Public(r.Context(), w, "resume.get", "Failed to load resume", err)
		return
	}
	response.OK(w, "", res)
}

// Upload handles POST /api/resume
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := upload.ParseForm(w, r, h.maxUpload); err != nil {
		if !errorhandler.Upload(r.Context(), w, err) {
			response.BadRequest(w, "Invalid form data")
		}
		return
	}

	file, done, err := upload.FormFile(r, "resume")
	defer done()
	if err != nil {
		response.BadRequest(w, "Invalid resume upload")
		return
	}
	if file == nil {
		response.BadRequest(w, "Resume file is required")
		return
	}

	res, err := h.service.Replace(r.Context(), file)
	if err != nil {
		if errorhandler.Upload(r.Context(), w, err) {
			return
		}
		errorhandler.Internal(r.Context(), w, "resume.upload", err)
		return
	}

	response.Created(w, "Resume uploaded", res)
}

// Delete handles DELETE /api/resume
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		errorhandler.Internal(r.Context(), w, "resume.delete", err)
		return
	}
	response.OK(w, "Resume deleted", nil)
}
