// Package api implements the vetdesk REST API using chi.
package api

import (
	"context"
	"net/http"
	"strings"
)

// UserHeader carries the signed-in user's email.
const UserHeader = "X-User-Email"

type ctxKey struct{}

// AuthMiddleware returns middleware that validates a Bearer token.
// If enabled is false, all requests pass through (disabled mode).
// If enabled is true, requests must carry a valid "Authorization: Bearer <token>" header.
func AuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != token {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityMiddleware stores the request's user email in the context,
// falling back to defaultEmail when the header is absent.
func IdentityMiddleware(defaultEmail string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := strings.TrimSpace(r.Header.Get(UserHeader))
			if email == "" {
				email = defaultEmail
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, email)))
		})
	}
}

// UserEmail returns the email stored by IdentityMiddleware.
func UserEmail(ctx context.Context) string {
	email, _ := ctx.Value(ctxKey{}).(string)
	return email
}

// OwnerOnly rejects requests whose identity is not owner. An empty owner
// means the live set is unscoped and every caller may use it.
func OwnerOnly(owner string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if owner != "" && !strings.EqualFold(UserEmail(r.Context()), owner) {
				writeJSON(w, http.StatusForbidden, errorBody("notifications belong to another user"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
