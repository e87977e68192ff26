package repository

import (
	"context"

	"github.com/kwekamelia/web-grp-lab/internal/projects/domain"
	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	gw storage.Gateway
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(gw storage.Gateway) *ProjectRepository {
	return &ProjectRepository{gw: gw}
}

// Create inserts a project. A duplicate project_id is rejected by the primary key.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	const q = `
INSERT INTO projects (project_id, name, description, created_at)
VALUES (?, ?, ?, ?)`
	_, err := r.gw.Execute(ctx, q, p.ProjectID, p.Name, p.Description, p.CreatedAt)
	return err
}

// List returns all stored projects, oldest first.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const q = `
SELECT project_id, name, description, created_at
FROM projects
ORDER BY created_at ASC, project_id ASC`

	out := make([]domain.Project, 0, 16)
	err := r.gw.FetchAll(ctx, q, func(row storage.Row) error {
		var p domain.Project
		if err := row.Scan(&p.ProjectID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of stored projects.
func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.gw.FetchOne(ctx, "SELECT COUNT(*) FROM projects").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
