package middleware

import (
	"net/http"
	"time"

	"github.com/listplus/listplus-backend/pkg/logger"
)

// Logging emits request.start / request.complete lines with method,
// path, status, and elapsed time in the structured log context.
func Logging(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if logg == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
			})
			logg.Info(ctx, "request.start")

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r.WithContext(ctx))

			logg.Info(logg.WithFields(ctx, map[string]any{
				"status":      rec.statusCode(),
				"duration_ms": time.Since(start).Milliseconds(),
			}), "request.complete")
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// statusCode treats an implicit 200 (handler wrote the body without
// calling WriteHeader) as OK.
func (r *statusRecorder) statusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}
