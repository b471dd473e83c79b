package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// AdminPasswordHeader carries the shared admin secret
const AdminPasswordHeader = "X-Admin-Password"

// CORSHandler returns a configured CORS handler for Chi
func CORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", AdminPasswordHeader},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	})
}
