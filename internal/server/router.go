// Package server assembles the HTTP surface: the middleware chain, the JSON
// API routes and the live stream endpoints.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/api/rest"
	"github.com/birddigital/avax-l1-explorer/internal/metrics"
	"github.com/birddigital/avax-l1-explorer/internal/middleware"
)

// RouterConfig holds configuration for the HTTP router
type RouterConfig struct {
	Logger         zerolog.Logger
	Metrics        *metrics.APIMetrics // optional
	CORS           middleware.CORSConfig
	RateLimit      middleware.RateLimiterConfig
	CompressLevel  int           // 0-9, 0 = no compression
	RequestTimeout time.Duration // JSON routes only; streams are long lived
}

// Routes are the handlers mounted on the router
type Routes struct {
	API    *rest.Handler
	Stream http.Handler // SSE, optional
	WS     http.Handler // WebSocket, optional
}

// NewRouter creates the chi router with the middleware chain and every
// route mounted. ctx bounds background work of the middleware.
func NewRouter(ctx context.Context, cfg RouterConfig, routes Routes) *chi.Mux {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(setupMiddleware(ctx, cfg)...)

	// JSON routes
	r.Group(func(r chi.Router) {
		if cfg.CompressLevel > 0 {
			r.Use(chimw.Compress(cfg.CompressLevel, "application/json"))
		}
		r.Use(chimw.Timeout(cfg.RequestTimeout))
		routes.API.Mount(r)
	})

	// Live streams bypass compression and the request timeout
	if routes.Stream != nil {
		r.Method(http.MethodGet, "/api/stream", routes.Stream)
	}
	if routes.WS != nil {
		r.Method(http.MethodGet, "/api/ws", routes.WS)
	}

	// Set last so every mounted sub-router inherits them
	r.NotFound(rest.NotFound)
	r.MethodNotAllowed(rest.MethodNotAllowed)

	return r
}

// setupMiddleware configures the middleware chain
func setupMiddleware(ctx context.Context, cfg RouterConfig) []func(http.Handler) http.Handler {
	var middlewares []func(http.Handler) http.Handler

	// 1. Real IP extraction, before anything logs or rate limits by address
	middlewares = append(middlewares, chimw.RealIP)

	// 2. Request ID so every later log line carries it
	middlewares = append(middlewares, middleware.NewRequestIDMiddleware(cfg.Logger).Middleware)

	// 3. Structured logging and request metrics
	middlewares = append(middlewares, middleware.NewLoggingMiddleware(cfg.Logger, cfg.Metrics).Middleware)

	// 4. Recovery from panics (log and return 500)
	middlewares = append(middlewares, panicRecoveryMiddleware(cfg.Logger))

	// 5. CORS answers preflight requests before routing
	middlewares = append(middlewares, middleware.NewCORSMiddleware(cfg.CORS).Middleware)

	// 6. Rate limiting
	var onLimited func()
	if cfg.Metrics != nil {
		onLimited = cfg.Metrics.RecordRateLimited
	}
	middlewares = append(middlewares, middleware.NewRateLimiter(ctx, cfg.RateLimit, onLimited).Middleware)

	// 7. Security headers
	middlewares = append(middlewares, middleware.SecureHeaders)

	return middlewares
}

// panicRecoveryMiddleware handles panics and logs them with zerolog
func panicRecoveryMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					reqID, _ := middleware.RequestIDFromContext(r.Context())
					logger.Error().
						Interface("panic", rec).
						Str("request_id", reqID).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("remote_addr", r.RemoteAddr).
						Msg("panic_recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
