package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/kwekamelia/web-grp-lab/internal/bugs/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func (h *Handler) page(c *gin.Context, code int, name string, data any) {
	c.Render(code, render.HTML{Template: pages, Name: name, Data: data})
}

func (h *Handler) assignForm(c *gin.Context) {
	h.page(c, http.StatusOK, "assign_form.html", nil)
}

func (h *Handler) assign(c *gin.Context) {
	var form domain.AssignBugForm
	if err := c.ShouldBind(&form); err != nil {
		h.page(c, http.StatusBadRequest, "assign_result.html", assignPage{Error: "bug_id and developer_id are required"})
		return
	}

	bugID, developerID := *form.BugID, *form.DeveloperID
	err := h.bugs.Assign(c.Request.Context(), bugID, developerID)
	switch {
	case err == nil:
		h.page(c, http.StatusOK, "assign_result.html", assignPage{BugID: bugID, DeveloperID: developerID})
	case errors.Is(err, domain.ErrBugNotFound):
		h.page(c, http.StatusNotFound, "assign_result.html", assignPage{Error: "Bug not found"})
	default:
		h.page(c, http.StatusInternalServerError, "assign_result.html", assignPage{Error: "Error: " + err.Error()})
	}
}
