package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/metrics"
)

// LoggingMiddleware logs every request and records request metrics
type LoggingMiddleware struct {
	logger  zerolog.Logger
	metrics *metrics.APIMetrics
}

// NewLoggingMiddleware creates a new logging middleware. m may be nil.
func NewLoggingMiddleware(logger zerolog.Logger, m *metrics.APIMetrics) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger:  logger,
		metrics: m,
	}
}

// Middleware returns the HTTP middleware function
func (l *LoggingMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// The chi wrapper keeps Flusher and Hijacker for the stream endpoints
		wrapped := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		if l.metrics != nil {
			l.metrics.IncActiveRequests(r.Method, "all")
			defer l.metrics.DecActiveRequests(r.Method, "all")
		}

		next.ServeHTTP(wrapped, r)

		status := wrapped.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)
		endpoint := routePattern(r)

		if l.metrics != nil {
			code := strconv.Itoa(status)
			l.metrics.RecordAPIRequest(r.Method, endpoint, code, duration.Seconds())
			if status >= http.StatusInternalServerError {
				l.metrics.RecordAPIError(r.Method, endpoint, "server_error")
			} else if status >= http.StatusBadRequest {
				l.metrics.RecordAPIError(r.Method, endpoint, "client_error")
			}
		}

		logger := l.logger
		if reqLogger, ok := LoggerFromContext(r.Context()); ok {
			logger = reqLogger
		}

		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("route", endpoint).
			Int("status", status).
			Int("bytes", wrapped.BytesWritten()).
			Str("remote_addr", r.RemoteAddr).
			Dur("duration", duration).
			Msg("http_request")
	})
}

// routePattern returns the matched chi route so metric labels stay bounded
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
