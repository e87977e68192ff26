package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kwekamelia/web-grp-lab/internal/auth/domain"
)

const (
	CtxUsername  = "username"
	CtxExpiresAt = "session_expires_at"
)

// SessionResolver looks up the session behind a token.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}

// RequireSession rejects requests without a live bearer session and stores
// the session's username in the context.
func RequireSession(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		sess, err := resolver.Resolve(c.Request.Context(), token)
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxUsername, sess.Username)
		c.Set(CtxExpiresAt, sess.ExpiresAt)
		c.Next()
	}
}

// Username returns the user set by RequireSession.
func Username(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUsername))
}

// BearerToken extracts the Bearer token from the Authorization header
func BearerToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
