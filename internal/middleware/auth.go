package middleware

import (
	"context"
	"net/http"

	"github.com/daltonneres/finantrack/internal/httputil"
	"github.com/daltonneres/finantrack/internal/session"
)

type contextKey string

const userIDContextKey contextKey = "userID"

// Authenticated rejects requests without a valid session cookie and puts the
// caller's user ID into the request context.
func Authenticated(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessions.UserID(r)
			if err != nil {
				httputil.RedirectFlash(w, r, "/login", "Please log in to continue.")
				return
			}
			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user ID set by Authenticated.
func UserID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDContextKey).(uint)
	return id, ok
}
