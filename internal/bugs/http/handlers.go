package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kwekamelia/web-grp-lab/internal/bugs/domain"
	"github.com/kwekamelia/web-grp-lab/internal/bugs/filter"
)

func (h *Handler) fail(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrBugNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bug not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bug, err := h.bugs.Create(c.Request.Context(), req.toNewBug())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, bug)
}

func (h *Handler) list(c *gin.Context) {
	criteria, err := filter.ParseQuery(c.Request.URL.RawQuery)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query string"})
		return
	}

	bugs, err := h.bugs.List(c.Request.Context(), criteria)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bugs)
}

func (h *Handler) get(c *gin.Context) {
	bug, err := h.bugs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bug)
}

func (h *Handler) update(c *gin.Context) {
	var req domain.UpdateBug
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	bug, err := h.bugs.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, bug)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.bugs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
