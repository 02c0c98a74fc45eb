package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Middleware(t *testing.T) {
	tests := []struct {
		name          string
		config        RateLimiterConfig
		requests      int
		expectBlocked int
	}{
		{
			name:          "allows requests within limit",
			config:        RateLimiterConfig{Enabled: true, RequestsPerSec: 10, Burst: 5},
			requests:      3,
			expectBlocked: 0,
		},
		{
			name:          "blocks requests exceeding burst",
			config:        RateLimiterConfig{Enabled: true, RequestsPerSec: 1, Burst: 3},
			requests:      10,
			expectBlocked: 7, // 3 burst allowed, 7 blocked
		},
		{
			name:          "disabled rate limiting allows all",
			config:        RateLimiterConfig{Enabled: false, RequestsPerSec: 1, Burst: 1},
			requests:      100,
			expectBlocked: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limited := 0
			rl := NewRateLimiter(t.Context(), tt.config, func() { limited++ })
			handler := rl.Middleware(okHandler())

			blocked := 0
			for i := 0; i < tt.requests; i++ {
				req := httptest.NewRequest(http.MethodGet, "/api/l1s", nil)
				req.RemoteAddr = "192.168.1.1:12345"
				rec := httptest.NewRecorder()
				handler.ServeHTTP(rec, req)
				if rec.Code == http.StatusTooManyRequests {
					blocked++
				}
			}

			assert.Equal(t, tt.expectBlocked, blocked)
			assert.Equal(t, tt.expectBlocked, limited)
		})
	}
}

func TestRateLimiter_Response(t *testing.T) {
	rl := NewRateLimiter(t.Context(), RateLimiterConfig{Enabled: true, RequestsPerSec: 0.1, Burst: 1}, nil)
	handler := rl.Middleware(okHandler())

	serve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:999"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, serve().Code)
	rec := serve()
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Rate limit exceeded", body["error"])
}

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(t.Context(), RateLimiterConfig{Enabled: true, RequestsPerSec: 0.1, Burst: 1}, nil)
	handler := rl.Middleware(okHandler())

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, addr)
	}
	assert.Equal(t, 3, rl.Len())
}

func TestRateLimiter_Prune(t *testing.T) {
	rl := NewRateLimiter(t.Context(), RateLimiterConfig{Enabled: true, RequestsPerSec: 1, Burst: 1, IdleTTL: time.Minute}, nil)
	now := time.Now()

	rl.getLimiter("old", now.Add(-2*time.Minute))
	rl.getLimiter("fresh", now)
	rl.prune(now)

	assert.Equal(t, 1, rl.Len())
}
