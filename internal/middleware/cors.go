// Package middleware holds the HTTP middleware chain of the API server.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	Enabled        bool
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORSMiddleware handles Cross-Origin Resource Sharing
type CORSMiddleware struct {
	config CORSConfig
}

// NewCORSMiddleware creates a new CORS middleware with configuration
func NewCORSMiddleware(config CORSConfig) *CORSMiddleware {
	// Set defaults if not provided
	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = []string{"*"}
	}
	if len(config.AllowedMethods) == 0 {
		config.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(config.AllowedHeaders) == 0 {
		config.AllowedHeaders = []string{"Content-Type"}
	}
	if config.MaxAge == 0 {
		config.MaxAge = 300 // 5 minutes default
	}

	return &CORSMiddleware{
		config: config,
	}
}

// allowedOrigin returns the Access-Control-Allow-Origin value for origin,
// or "" when the origin is not allowed
func (c *CORSMiddleware) allowedOrigin(origin string) string {
	for _, ao := range c.config.AllowedOrigins {
		if ao == "*" {
			return "*"
		}
		if ao == origin {
			return origin
		}
	}
	return ""
}

// Middleware returns the HTTP middleware function. Preflight requests are
// answered here with an empty body.
func (c *CORSMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// If CORS is disabled, pass through
		if !c.config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		allowed := c.allowedOrigin(r.Header.Get("Origin"))
		if allowed != "" {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allowed)
			h.Set("Access-Control-Allow-Methods", strings.Join(c.config.AllowedMethods, ", "))
			h.Set("Access-Control-Allow-Headers", strings.Join(c.config.AllowedHeaders, ", "))
			h.Set("Access-Control-Max-Age", strconv.Itoa(c.config.MaxAge))
			if allowed != "*" {
				h.Add("Vary", "Origin")
			}
		}

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			if allowed != "" {
				w.WriteHeader(http.StatusOK)
			} else {
				w.WriteHeader(http.StatusForbidden)
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}
