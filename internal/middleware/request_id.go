package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/portfolio/portfolio-api/internal/pkg/logger"
)

// RequestID adds a unique request ID to each request and attaches a logger
// carrying it to the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check if request ID already exists
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", requestID)
		r.Header.Set("X-Request-ID", requestID)

		reqLogger := log.Logger.With().Str("request_id", requestID).Logger()
		ctx := logger.WithContext(r.Context(), &reqLogger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
