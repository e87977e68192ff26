package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) list(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.List())
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.registry.Create(c.Request.Context(), req.toNewProject())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}
