package http

import (
	"github.com/kwekamelia/web-grp-lab/internal/bugs/domain"
	"github.com/kwekamelia/web-grp-lab/internal/bugs/service"
)

// Handler bundles the dependencies for bug HTTP endpoints.
type Handler struct {
	bugs *service.BugService
}

func New(bugs *service.BugService) *Handler {
	return &Handler{bugs: bugs}
}

// createReq fields are pointers so that "required" rejects only absent
// keys; empty strings are valid values.
type createReq struct {
	Title       *string `json:"title" binding:"required"`
	Description *string `json:"description" binding:"required"`
	ReportedBy  *string `json:"reported_by" binding:"required"`
	Severity    *string `json:"severity" binding:"required"`
	ProjectID   *string `json:"project_id"`
}

func (r createReq) toNewBug() domain.NewBug {
	return domain.NewBug{
		Title:       *r.Title,
		Description: *r.Description,
		ReportedBy:  *r.ReportedBy,
		Severity:    *r.Severity,
		ProjectID:   r.ProjectID,
	}
}

type assignPage struct {
	BugID       string
	DeveloperID string
	Error       string
}
