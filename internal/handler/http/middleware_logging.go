package http

import (
	"net/http"
	"time"

	"github.com/oyugijr/EchoTask/internal/logger"
)

// withLogging emits one structured line per handled request with the final
// status and response size. It sits inside withTraceID so every line carries
// the request's trace id.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rw.status).
			Int("bytes", rw.size).
			Dur("took", time.Since(start)).
			Msg("request handled")
	})
}
