package http

import (
	"net/http"
	"time"

	"github.com/boletapp/gastify-sync/internal/logger"
)

// withLogging emits one access log line per request, after it finished.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		started := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.RequestURI).
			Int("status", lw.status).
			Int("bytes", lw.size).
			Dur("elapsed", time.Since(started)).
			Send()
	})
}
