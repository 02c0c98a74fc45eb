package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func TestCORSMiddleware_Enabled(t *testing.T) {
	tests := []struct {
		name          string
		config        CORSConfig
		origin        string
		method        string
		expectAllowed string
		expectStatus  int
	}{
		{
			name:          "allows whitelisted origin",
			config:        CORSConfig{Enabled: true, AllowedOrigins: []string{"http://localhost:3000"}},
			origin:        "http://localhost:3000",
			method:        http.MethodGet,
			expectAllowed: "http://localhost:3000",
			expectStatus:  http.StatusOK,
		},
		{
			name:          "blocks non-whitelisted origin",
			config:        CORSConfig{Enabled: true, AllowedOrigins: []string{"http://localhost:3000"}},
			origin:        "http://evil.com",
			method:        http.MethodGet,
			expectAllowed: "",
			expectStatus:  http.StatusOK, // Passes through but no CORS headers
		},
		{
			name:          "allows wildcard origin",
			config:        CORSConfig{Enabled: true},
			origin:        "http://anywhere.com",
			method:        http.MethodPost,
			expectAllowed: "*",
			expectStatus:  http.StatusOK,
		},
		{
			name:          "preflight answered with empty body",
			config:        CORSConfig{Enabled: true},
			origin:        "http://anywhere.com",
			method:        http.MethodOptions,
			expectAllowed: "*",
			expectStatus:  http.StatusOK,
		},
		{
			name:          "preflight from disallowed origin",
			config:        CORSConfig{Enabled: true, AllowedOrigins: []string{"http://localhost:3000"}},
			origin:        "http://evil.com",
			method:        http.MethodOptions,
			expectAllowed: "",
			expectStatus:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cors := NewCORSMiddleware(tt.config)
			handler := cors.Middleware(okHandler())

			req := httptest.NewRequest(tt.method, "/api/l1s", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectStatus, rec.Code)
			assert.Equal(t, tt.expectAllowed, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.method == http.MethodOptions {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

func TestCORSMiddleware_Defaults(t *testing.T) {
	handler := NewCORSMiddleware(CORSConfig{Enabled: true}).Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "300", rec.Header().Get("Access-Control-Max-Age"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSMiddleware_Disabled(t *testing.T) {
	handler := NewCORSMiddleware(CORSConfig{Enabled: false}).Middleware(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
