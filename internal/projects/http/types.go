package http

import (
	"github.com/kwekamelia/web-grp-lab/internal/projects/domain"
	"github.com/kwekamelia/web-grp-lab/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	registry *service.ProjectRegistry
}

func New(registry *service.ProjectRegistry) *Handler {
	return &Handler{registry: registry}
}

// Name must be present but may be empty.
type createReq struct {
	Name        *string `json:"name" binding:"required"`
	Description string  `json:"description"`
}

func (r createReq) toNewProject() domain.NewProject {
	return domain.NewProject{Name: *r.Name, Description: r.Description}
}
