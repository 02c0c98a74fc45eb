package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var buf bytes.Buffer
	m := NewRequestIDMiddleware(zerolog.New(&buf))

	var seen string
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := RequestIDFromContext(r.Context())
		require.True(t, ok)
		seen = id

		logger, ok := LoggerFromContext(r.Context())
		require.True(t, ok)
		logger.Info().Msg("inside")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/l1s", nil))

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"request_id":"`+seen+`"`)
	assert.Contains(t, buf.String(), `"path":"/api/l1s"`)
}

func TestRequestIDMiddleware_IncomingHeader(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "valid uuid kept", incoming: "3f2b6a44-5d0e-4d6b-9a38-0e5f6c7d8e9f", keep: true},
		{name: "garbage replaced", incoming: "not-a-uuid", keep: false},
		{name: "empty replaced", incoming: "", keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRequestIDMiddleware(zerolog.Nop()).Middleware(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, tt.incoming)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if tt.keep {
				assert.Equal(t, tt.incoming, got)
			} else {
				assert.NotEqual(t, tt.incoming, got)
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}

func TestMustLoggerFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := LoggerFromContext(req.Context())
	assert.False(t, ok)
	logger := MustLoggerFromContext(req.Context())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
