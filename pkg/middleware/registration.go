package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tair/kitchen-stock/pkg/logger"
)

// Config holds configuration for middlewares
type Config struct {
	EnableLogging   bool
	EnableTracing   bool
	EnableRecovery  bool
	EnableTimeout   bool
	TimeoutDuration time.Duration
	CORSOptions     cors.Options
	Metrics         *Metrics
}

// DefaultConfig returns default middleware configuration
func DefaultConfig(metrics *Metrics) *Config {
	return &Config{
		EnableLogging:   true,
		EnableTracing:   true,
		EnableRecovery:  true,
		EnableTimeout:   true,
		TimeoutDuration: 30 * time.Second,
		CORSOptions: cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		},
		Metrics: metrics,
	}
}

// Register attaches the configured middlewares to the router
func Register(router *mux.Router, config *Config) {
	logger.Logger.Info().
		Bool("logging", config.EnableLogging).
		Bool("tracing", config.EnableTracing).
		Bool("recovery", config.EnableRecovery).
		Bool("timeout", config.EnableTimeout).
		Dur("timeout_duration", config.TimeoutDuration).
		Msg("Registering middlewares")

	// Recovery first so it catches panics from everything below
	if config.EnableRecovery {
		router.Use(Recovery())
	}

	if config.EnableTimeout {
		router.Use(Timeout(config.TimeoutDuration))
	}

	router.Use(RequestID())

	if config.EnableTracing {
		router.Use(func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(next, "kitchen-http-request")
		})
	}

	if config.EnableLogging {
		router.Use(Logging)
	}

	if config.Metrics != nil {
		router.Use(config.Metrics.Middleware)
	}

	router.Use(SecurityHeaders())
}

// CORS wraps the whole router; preflight requests never reach a route.
func CORS(config *Config, next http.Handler) http.Handler {
	return cors.New(config.CORSOptions).Handler(next)
}

// Recovery recovers from panics and returns 500 error
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Logger.Error().
						Interface("panic", err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("Panic recovered")

					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// Timeout sets a timeout for HTTP requests
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "Request timeout")
	}
}

// RequestID adds a unique request ID to each request
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set("X-Request-ID", requestID)
			r.Header.Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders adds security headers to responses
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			next.ServeHTTP(w, r)
		})
	}
}
