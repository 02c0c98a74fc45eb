package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/logger"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// contextKey is an unexported type for context keys to prevent collisions
type contextKey int

const (
	requestLoggerKey contextKey = iota
)

// RequestIDMiddleware assigns each request an ID and a request-scoped logger
type RequestIDMiddleware struct {
	logger zerolog.Logger
}

// NewRequestIDMiddleware creates a new request ID middleware instance
func NewRequestIDMiddleware(logger zerolog.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{
		logger: logger,
	}
}

// Middleware implements the HTTP middleware interface. A well-formed UUID
// supplied by the client is kept; anything else is replaced.
func (m *RequestIDMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}

		requestLogger := m.logger.With().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()

		ctx := logger.WithRequestID(r.Context(), requestID)
		ctx = WithLogger(ctx, requestLogger)

		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext retrieves the request ID from the context
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id := logger.GetRequestID(ctx)
	return id, id != ""
}

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, requestLoggerKey, &logger)
}

// LoggerFromContext retrieves the request-scoped logger from context
func LoggerFromContext(ctx context.Context) (zerolog.Logger, bool) {
	logger, ok := ctx.Value(requestLoggerKey).(*zerolog.Logger)
	if !ok || logger == nil {
		return zerolog.Logger{}, false
	}
	return *logger, true
}

// MustLoggerFromContext retrieves logger or returns a disabled logger
func MustLoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := LoggerFromContext(ctx); ok {
		return logger
	}
	return zerolog.Nop()
}
