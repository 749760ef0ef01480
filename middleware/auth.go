// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/updateshub/auth"
	"github.com/danielhkuo/updateshub/models"
)

type contextKey int

const userKey contextKey = iota

// UserLoader resolves the account a token was issued for
type UserLoader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Authenticate resolves an optional "Authorization: Bearer <token>"
// header into the current user. Requests without a usable token continue
// as guests; RequireAuth and RequireAdmin turn them away where needed.
func Authenticate(users UserLoader, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(token, secret)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				// Deleted accounts fall through as guests
				slog.Debug("token user not found", "user_id", claims.UserID, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// BearerToken returns the token of an "Authorization: Bearer" header, or ""
func BearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// WithUser stores the authenticated user in ctx
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user, or nil for guests
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// RequireAuth rejects guests with 401
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			unauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects guests with 401 and non-admins with 403
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			unauthorized(w, r)
			return
		}
		if !user.IsAdmin() {
			ErrorResponse(w, http.StatusForbidden, "Not authorized as an admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	if BearerToken(r) == "" {
		ErrorResponse(w, http.StatusUnauthorized, "Not authorized, no token")
		return
	}
	ErrorResponse(w, http.StatusUnauthorized, "Not authorized, token failed")
}
