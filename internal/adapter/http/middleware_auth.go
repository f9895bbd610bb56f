package http

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/driveline/driveline/internal/ports"
)

type contextKey string

const (
	adminIDKey contextKey = "admin_id"
	roleKey    contextKey = "role"
)

// AuthMiddleware validates the Bearer token and injects the admin
// identity into the request context.
type AuthMiddleware struct {
	tokens ports.TokenService
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(tokens ports.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Require wraps a handler and rejects requests without a valid token
func (m *AuthMiddleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "missing or malformed authorization header",
			})
			return
		}

		claims, err := m.tokens.ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "invalid or expired token",
			})
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, claims.AdminID)
		ctx = context.WithValue(ctx, roleKey, claims.Role)
		next(w, r.WithContext(ctx))
	}
}

// AdminIDFromContext returns the authenticated admin ID, if any
func AdminIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(adminIDKey).(string)
	return id
}

// clientIP extracts the caller address, honoring X-Forwarded-For when a
// proxy sits in front.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
