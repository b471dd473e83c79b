package middleware

import (
	"net"
	"net/http"
	"strconv"

	"github.com/portfolio/portfolio-api/internal/pkg/logger"
	"github.com/portfolio/portfolio-api/internal/pkg/ratelimit"
	"github.com/portfolio/portfolio-api/internal/pkg/response"
)

// RateLimit limits requests per client IP. A nil limiter disables it.
func RateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				logger.FromContext(r.Context()).Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
			}
			if !res.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())))
				response.TooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr (already rewritten by RealIP)
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
