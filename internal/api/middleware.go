/**
 * @description
 * Bearer-token extraction middleware for protected routes. The token is
 * pulled from the Authorization header and stashed in the request context;
 * handlers decide what a missing or invalid token means for their route.
 */
package api

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const authTokenContextKey contextKey = "authToken"

// BearerToken extracts the Authorization bearer token into the request
// context when present. It never rejects the request itself.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if token, ok := bearerToken(authHeader); ok {
			ctx := context.WithValue(r.Context(), authTokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TokenFromContext returns the bearer token stored by BearerToken.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(authTokenContextKey).(string)
	return token, ok
}

func bearerToken(authHeader string) (string, bool) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}

	return token, true
}
