package http

import "github.com/gin-gonic/gin"

// Register attaches the JSON bug routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/new", h.create)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

// RegisterPages attaches the HTML assignment form routes. writeGuards run
// before the state-changing POST only.
func (h *Handler) RegisterPages(rg *gin.RouterGroup, writeGuards ...gin.HandlerFunc) {
	rg.GET("/assign", h.assignForm)
	rg.POST("/assign", append(writeGuards, h.assign)...)
}
