package middleware

import (
	"net/http"
	"time"

	"github.com/tair/kitchen-stock/pkg/logger"
)

// Logging logs HTTP requests with structured logging
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		ctx := r.Context()

		logEvent := logger.Info(ctx)
		if ww.statusCode >= 500 {
			logEvent = logger.Error(ctx)
		} else if ww.statusCode >= 400 {
			logEvent = logger.Warn(ctx)
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Int("status", ww.statusCode).
			Int64("duration_ms", duration.Milliseconds()).
			Msg("HTTP request completed")
	})
}

// statusRecorder wraps http.ResponseWriter to capture status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}
