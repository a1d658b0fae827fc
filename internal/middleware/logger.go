package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Logger attaches log to every request context, tags it with a request ID and
// writes one access line per request.
func Logger(log zerolog.Logger) func(http.Handler) http.Handler {
	withLogger := hlog.NewHandler(log)
	withRequestID := hlog.RequestIDHandler("req_id", "X-Request-Id")
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})

	return func(next http.Handler) http.Handler {
		return withLogger(withRequestID(access(next)))
	}
}
