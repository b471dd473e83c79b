package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/portfolio/portfolio-api/internal/pkg/logger"
	"github.com/portfolio/portfolio-api/internal/pkg/response"
)

// AdminPassword returns middleware that only lets requests through whose
// X-Admin-Password header equals password byte for byte.
func AdminPassword(password string) func(http.Handler) http.Handler {
	expected := []byte(password)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminPasswordHeader)
			if got == "" || len(expected) == 0 || subtle.ConstantTimeCompare([]byte(got), expected) != 1 {
				logger.FromContext(r.Context()).Warn().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Bool("header_present", got != "").
					Msg("Admin request rejected")
				response.Unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
