package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ecodrive/ecodrive-api/internal/gateway"
	"github.com/ecodrive/ecodrive-api/internal/utils"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUserID holds the authenticated user's ID
	ContextKeyUserID ContextKey = "userID"
)

// AuthMiddleware handles JWT authentication and the admin gate
type AuthMiddleware struct {
	jwtSecret []byte
	gw        *gateway.Gateway
	log       *logrus.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(secret []byte, gw *gateway.Gateway, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: secret, gw: gw, log: log}
}

// JWTAuth verifies the bearer token and puts the user ID into the request
// context
func (m *AuthMiddleware) JWTAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		userID, err := utils.ParseToken(parts[1], m.jwtSecret)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// AdminOnly requires a valid token AND a positive server-side admin check.
// The check is asked fresh on every request; admin status is never cached
// in the token.
func (m *AuthMiddleware) AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return m.JWTAuth(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserID(r)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		admin, err := m.gw.IsAdmin(r.Context(), userID)
		if err != nil {
			if gateway.IsAuthorization(err) {
				utils.RespondWithError(w, http.StatusForbidden, "Access denied")
				return
			}
			m.log.WithError(err).Error("admin check failed")
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify permissions")
			return
		}
		if !admin {
			utils.RespondWithError(w, http.StatusForbidden, "Access denied")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserID retrieves the authenticated user ID from the request's context
func GetUserID(r *http.Request) (string, error) {
	userID, ok := r.Context().Value(ContextKeyUserID).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in request context")
	}
	return userID, nil
}
