package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwekamelia/web-grp-lab/internal/auth/domain"
	"github.com/kwekamelia/web-grp-lab/internal/auth/middleware"
)

// Login exchanges a username and password for a session token.
func (h *Handler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body", "details": err.Error()})
		return
	}

	sess, err := h.authService.Login(c.Request.Context(), *req.Username, *req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, domain.LoginResponse{Status: domain.LoginFailure})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, domain.LoginResponse{Status: domain.LoginSuccess, Token: &sess.Token})
}

// Logout revokes the bearer token.
func (h *Handler) Logout(c *gin.Context) {
	err := h.authService.Logout(c.Request.Context(), middleware.BearerToken(c))
	if errors.Is(err, domain.ErrSessionNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Session reports who the bearer token belongs to. It runs behind
// middleware.RequireSession.
func (h *Handler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"username":   middleware.Username(c),
		"expires_at": c.GetTime(middleware.CtxExpiresAt),
	})
}
