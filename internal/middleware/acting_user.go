package middleware

import (
	"log/slog"
	"net/http"

	"github.com/templui/goalpost/internal/ctxkeys"
	"github.com/templui/goalpost/internal/model"
)

// UserLookup resolves a user ID against the directory.
type UserLookup interface {
	User(userID string) (*model.User, error)
}

// ActingUser puts the configured user into the request context. There is no
// sign-in: every request acts as the same directory user.
func ActingUser(users UserLookup, userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := users.User(userID)
			if err != nil {
				// Continue without a user; RequireUser rejects writes.
				slog.Error("acting user not found", "error", err, "user_id", userID)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects the request when no acting user is in context.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) == nil {
			http.Error(w, "No acting user configured", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}
}
