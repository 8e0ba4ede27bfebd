package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/templui/goalpost/internal/ctxkeys"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfTokenLen   = 32
	csrfCookieTTL  = 7 * 24 * time.Hour
)

// CSRF checks a double-submit token on every unsafe request outside the
// exempt path prefixes. The token travels in a cookie and must come back in
// the X-CSRF-Token header (htmx) or the csrf_token form field (plain forms).
func CSRF(exemptPrefixes ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hasAnyPrefix(r.URL.Path, exemptPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			token := csrfCookie(w, r)
			r = r.WithContext(ctxkeys.WithCSRFToken(r.Context(), token))

			if !isSafeMethod(r.Method) && !sameToken(token, submittedCSRFToken(r)) {
				slog.Warn("csrf token mismatch",
					"method", r.Method,
					"path", r.URL.Path,
					"ip", getClientIP(r),
				)
				http.Error(w, "Invalid CSRF token", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// csrfCookie returns the request's token, issuing a new cookie when it is
// missing or malformed.
func csrfCookie(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(csrfCookieName); err == nil && len(c.Value) == base64.RawURLEncoding.EncodedLen(csrfTokenLen) {
		return c.Value
	}

	token := generateCSRFToken()
	cfg := ctxkeys.Config(r.Context())
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg != nil && cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(csrfCookieTTL.Seconds()),
	})
	return token
}

func submittedCSRFToken(r *http.Request) string {
	if token := r.Header.Get(csrfHeader); token != "" {
		return token
	}
	return r.PostFormValue(csrfFormField)
}

func generateCSRFToken() string {
	b := make([]byte, csrfTokenLen)
	if _, err := rand.Read(b); err != nil {
		panic("csrf: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

func sameToken(expected, actual string) bool {
	return expected != "" && actual != "" &&
		subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func hasAnyPrefix(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
