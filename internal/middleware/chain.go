package middleware

import (
	"net/http"

	"github.com/templui/goalpost/internal/config"
	"github.com/templui/goalpost/internal/ctxkeys"
)

// Middleware wraps a handler.
type Middleware = func(http.Handler) http.Handler

// Chain wraps h so that the middlewares run in the order given:
//
//	Chain(mux, Config(cfg), RequestLogging, WithURLPath)
//
// runs Config, then RequestLogging, then WithURLPath, then mux.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// Config stores the sanitized configuration in every request context.
func Config(cfg *config.Config) Middleware {
	safe := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ctxkeys.WithConfig(r.Context(), safe)))
		})
	}
}

// WithURLPath records the request path so the layout can highlight the
// active nav link.
func WithURLPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(ctxkeys.WithURLPath(r.Context(), r.URL.Path)))
	})
}
