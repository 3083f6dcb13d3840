// Package middleware provides HTTP middleware for the marketplace API.
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/etown-exchange/api/internal/models"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
	"github.com/etown-exchange/api/internal/pkg/response"
)

type contextKey string

const (
	// UserIDKey is the context key for the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// UserKey is the context key for the authenticated user.
	UserKey contextKey = "user"
)

// SessionCookieName is the session cookie set on sign-in.
const SessionCookieName = "exchange_session"

// UserLoader resolves a session's user ID to the full user record.
type UserLoader func(ctx context.Context, id uuid.UUID) (*models.User, error)

// SessionAuth returns a middleware that authenticates via the session cookie
// and loads the user into the request context.
func SessionAuth(store sessions.Store, loadUser UserLoader) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionCookieName)
			if err != nil {
				response.Error(w, apierrors.ErrUnauthorized)
				return
			}

			userIDStr, ok := session.Values["user_id"].(string)
			if !ok || userIDStr == "" {
				response.Error(w, apierrors.ErrUnauthorized)
				return
			}

			userID, err := uuid.Parse(userIDStr)
			if err != nil {
				response.Error(w, apierrors.ErrUnauthorized)
				return
			}

			user, err := loadUser(r.Context(), userID)
			if err != nil || user == nil {
				response.Error(w, apierrors.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSessionAuth loads the user when a valid session exists but lets
// anonymous requests through. Browse and item detail use it so the
// favorited flag can be filled in for signed-in viewers.
func OptionalSessionAuth(store sessions.Store, loadUser UserLoader) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := store.Get(r, SessionCookieName)
			if err == nil {
				if userIDStr, ok := session.Values["user_id"].(string); ok && userIDStr != "" {
					if userID, err := uuid.Parse(userIDStr); err == nil {
						if user, err := loadUser(r.Context(), userID); err == nil && user != nil {
							ctx := context.WithValue(r.Context(), UserIDKey, userID)
							ctx = context.WithValue(ctx, UserKey, user)
							next.ServeHTTP(w, r.WithContext(ctx))
							return
						}
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID returns the authenticated user ID from the request context.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}

// GetUser returns the authenticated user from the request context.
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}
