package http

import (
	"github.com/gin-gonic/gin"

	"github.com/kwekamelia/web-grp-lab/internal/auth/middleware"
)

// Register mounts the auth routes. Extra handlers (e.g. a rate limiter) run
// before login only.
func (h *Handler) Register(rg *gin.RouterGroup, loginGuards ...gin.HandlerFunc) {
	rg.POST("/login", append(loginGuards, h.Login)...)
	rg.POST("/logout", h.Logout)
	rg.GET("/session", middleware.RequireSession(h.authService), h.Session)
}
