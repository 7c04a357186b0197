// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/voteup/auth"
	"github.com/danielhkuo/voteup/models"
)

// Authenticator resolves a bearer token to the stored user
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (models.User, error)
}

type userKey struct{}

// WithUser stores u in ctx
func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// UserFromContext returns the user set by RequireAuth
func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey{}).(models.User)
	return u, ok
}

// BearerToken extracts the token from "Authorization: Bearer <token>"
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth rejects requests without a valid session token and loads
// the current user record into the request context
func RequireAuth(a Authenticator) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				CodedErrorResponse(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Missing bearer token")
				return
			}

			u, err := a.CurrentUser(r.Context(), token)
			switch {
			case errors.Is(err, auth.ErrUnavailable):
				slog.Error("failed to resolve session", "error", err)
				CodedErrorResponse(w, http.StatusServiceUnavailable, "AUTH_UNAVAILABLE", "Identity service unavailable")
				return
			case err != nil:
				CodedErrorResponse(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid or expired token")
				return
			}

			next(w, r.WithContext(WithUser(r.Context(), u)))
		}
	}
}

// RequireAdmin is RequireAuth plus an admin role check
func RequireAdmin(a Authenticator) func(http.HandlerFunc) http.HandlerFunc {
	requireAuth := RequireAuth(a)
	return func(next http.HandlerFunc) http.HandlerFunc {
		return requireAuth(func(w http.ResponseWriter, r *http.Request) {
			u, _ := UserFromContext(r.Context())
			if u.Role != models.RoleAdmin {
				CodedErrorResponse(w, http.StatusForbidden, "FORBIDDEN", "Admin access required")
				return
			}
			next(w, r)
		})
	}
}
