package middleware

import (
	"fmt"
	"net/http"
	"strings"
)

// Script and style hosts the page layout loads from.
var scriptSources = []string{
	"https://cdn.tailwindcss.com",
	"https://unpkg.com",
}

// SecurityHeaders sets the CSP (with the request nonce) and the usual
// hardening headers on every response.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy(GetNonce(r.Context())))
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		next.ServeHTTP(w, r)
	})
}

func contentSecurityPolicy(nonce string) string {
	scripts := "script-src 'self' " + strings.Join(scriptSources, " ")
	if nonce != "" {
		scripts += fmt.Sprintf(" 'nonce-%s'", nonce)
	}

	return strings.Join([]string{
		"default-src 'self'",
		scripts,
		// Tailwind's browser build injects <style> elements at runtime.
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https://i.pravatar.cc",
		"connect-src 'self'",
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}, "; ")
}
