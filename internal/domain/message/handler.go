package message

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/portfolio/portfolio-api/internal/pkg/errorhandler"
	"github.com/portfolio/portfolio-api/internal/pkg/response"
	"github.com/portfolio/portfolio-api/internal/pkg/validator"
)

// Handler handles message HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates message handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/messages
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.List(r.Context())
	if err != nil {
		errorhandler.Internal(r.Context(), w, "message.list", err)
		return
	}
	response.JSON(w, http.StatusOK, messages)
}

// Submit handles POST /api/messages
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	if _, err := h.service.Submit(r.Context(), &req); err != nil {
		errorhandler.Public(r.Context(), w, "message.submit", "Failed to save message", err)
		return
	}

	response.Created(w, "Message saved", nil)
}

// ToggleRead handles PATCH /api/messages/{id}/read
func (h *Handler) ToggleRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid message ID")
		return
	}

	msg, err := h.service.ToggleRead(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			response.NotFound(w, "Message not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "message.toggle_read", err)
		return
	}

	response.OK(w, "Status updated", msg)
}

// Delete handles DELETE /api/messages/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid message ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			response.NotFound(w, "Message not found")
			return
		}
		errorhandler.Internal(r.Context(), w, "message.delete", err)
		return
	}

	response.OK(w, "Message deleted", nil)
}
