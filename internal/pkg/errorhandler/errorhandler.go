package errorhandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/portfolio/portfolio-api/internal/pkg/logger"
	"github.com/portfolio/portfolio-api/internal/pkg/response"
	"github.com/portfolio/portfolio-api/internal/pkg/storage"
)

// Internal logs a backend failure and passes the raw error text to the
// client. Only admin routes use it.
func Internal(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	logger.FromContext(ctx).Error().
		Err(err).
		Str("operation", operation).
		Msg("Request failed")

	response.InternalError(w, err.Error())
}

// Public logs a backend failure and answers with a fixed message, so public
// routes never expose storage details.
func Public(ctx context.Context, w http.ResponseWriter, operation, message string, err error) {
	logger.FromContext(ctx).Error().
		Err(err).
		Str("operation", operation).
		Msg("Public request failed")

	response.InternalError(w, message)
}

// LogValidationError logs validation errors with details
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	logger.FromContext(ctx).Warn().
		Interface("validation_errors", fieldErrors).
		Msg("Validation error")
}

// Upload answers 400 when err is a rejected file and reports whether it
// wrote a response.
func Upload(ctx context.Context, w http.ResponseWriter, err error) bool {
	var message string
	switch {
	case errors.Is(err, storage.ErrInvalidFileType):
		message = "File type not allowed"
	case errors.Is(err, storage.ErrFileTooLarge):
		message = "File is too large"
	case errors.Is(err, storage.ErrEmptyFile):
		message = "File is empty"
	default:
		return false
	}

	logger.FromContext(ctx).Warn().Err(err).Msg("Upload rejected")
	response.BadRequest(w, message)
	return true
}
