package safelink

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/safelink/internal/logger"
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter

	// status is the last status code written, defaulting to 200.
	status int
}

// WriteHeader records the status code before delegating.
func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// withRequestLogging tags every request with a generated request id and
// logs the outcome at debug level. The id is attached to the request
// context, so service-level log lines carry it too.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ctx := logger.WithKV(r.Context(), "request_id", uuid.NewString())
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r.WithContext(ctx))

		logger.DebugKV(ctx, "Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
