package middleware

import (
	"context"
	"net/http"
	"strings"
)

// UserIDHeader carries the external id of the authenticated caller. The
// identity provider in front of this service sets it.
const UserIDHeader = "X-User-Id"

type callerKey struct{}

// WithCallerID returns a context carrying the caller's external id.
func WithCallerID(ctx context.Context, externalID string) context.Context {
	return context.WithValue(ctx, callerKey{}, externalID)
}

// CallerID returns the caller's external id, or "" for anonymous requests.
func CallerID(ctx context.Context) string {
	id, _ := ctx.Value(callerKey{}).(string)
	return id
}

// Identity copies the forwarded caller id into the request context.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := strings.TrimSpace(r.Header.Get(UserIDHeader)); id != "" {
			r = r.WithContext(WithCallerID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireIdentity answers 401 when the request carries no caller id.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CallerID(r.Context()) == "" {
			writeRejection(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
