package middleware

import (
	"fmt"
	"net/http"
)

// SecurityHeaders configuration for HTTP security headers
type SecurityHeaders struct {
	HSTSMaxAge            int  // Max age in seconds (default: 31536000 = 1 year)
	HSTSIncludeSubdomains bool // Include subdomains in HSTS (default: true)

	// Content Security Policy directives
	CSPDirectives string

	EnableHSTS bool
	EnableCSP  bool
}

// DefaultSecurityHeaders returns security headers for a JSON API
func DefaultSecurityHeaders() *SecurityHeaders {
	return &SecurityHeaders{
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		CSPDirectives:         "default-src 'none'; frame-ancestors 'none'",
		EnableHSTS:            true,
		EnableCSP:             true,
	}
}

// Middleware returns an HTTP middleware function that adds security headers
func (sh *SecurityHeaders) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// HSTS only over HTTPS, directly or behind a proxy
		if sh.EnableHSTS && (r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https") {
			hstsValue := fmt.Sprintf("max-age=%d", sh.HSTSMaxAge)
			if sh.HSTSIncludeSubdomains {
				hstsValue += "; includeSubDomains"
			}
			h.Set("Strict-Transport-Security", hstsValue)
		}

		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if sh.EnableCSP && sh.CSPDirectives != "" {
			h.Set("Content-Security-Policy", sh.CSPDirectives)
		}

		next.ServeHTTP(w, r)
	})
}

// SecureHeaders is a convenience function for quick middleware setup with defaults
func SecureHeaders(next http.Handler) http.Handler {
	return DefaultSecurityHeaders().Middleware(next)
}
