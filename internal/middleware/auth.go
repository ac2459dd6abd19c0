package middleware

import (
	"context"
	"net/http"
	"strings"
)

// AccessCookieName is the cookie holding the access token; RefreshCookieName
// holds the refresh token used by /auth/refresh and /auth/logout.
const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// AccessVerifier verifies an access token and returns the user ID it was
// issued to. Satisfied by *token.Manager.
type AccessVerifier interface {
	ParseAccess(raw string) (int64, error)
}

type ctxKey int

const userIDKey ctxKey = 0

// UserID returns the authenticated user's ID from the request context, or
// 0 if the request is anonymous.
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// RequireAuth returns a middleware that rejects requests without a valid
// access token with 401. The token is read from the accessToken cookie or,
// failing that, an Authorization bearer header.
func RequireAuth(verifier AccessVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := verify(verifier, r)
			if !ok {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Unauthorized","message":"authentication required"}`))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}

// SoftAuth returns a middleware that attaches the user ID when a valid
// access token is present but lets anonymous requests through. Used by post
// reads so IsLiked can be computed for logged-in viewers.
func SoftAuth(verifier AccessVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := verify(verifier, r); ok {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// verify extracts and checks the access token, cookie first, then the
// Authorization header.
func verify(verifier AccessVerifier, r *http.Request) (int64, bool) {
	raw := ""
	if c, err := r.Cookie(AccessCookieName); err == nil {
		raw = c.Value
	} else if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		raw = strings.TrimPrefix(h, "Bearer ")
	}
	if raw == "" {
		return 0, false
	}
	userID, err := verifier.ParseAccess(raw)
	if err != nil {
		return 0, false
	}
	return userID, true
}
