package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kwekamelia/web-grp-lab/internal/logging"
	"github.com/kwekamelia/web-grp-lab/internal/projects/domain"
	"github.com/kwekamelia/web-grp-lab/internal/projects/repository"
	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

// ProjectRegistry owns the durable project list and its in-process mirror.
//
// Reads are served from the cache only. The cache is seeded once by Bootstrap
// and appended to after every successful Create; nothing else refreshes it,
// so rows changed out-of-band are not seen until restart. mu is never held
// across a store round-trip.
type ProjectRegistry struct {
	repo *repository.ProjectRepository
	now  func() time.Time

	mu    sync.Mutex
	cache []domain.Project
}

// NewProjectRegistry creates a registry with an empty cache.
func NewProjectRegistry(repo *repository.ProjectRepository) *ProjectRegistry {
	return &ProjectRegistry{
		repo: repo,
		now:  time.Now,
	}
}

// Bootstrap loads every stored project into the cache. Any failure leaves the
// cache untouched and must abort startup.
func (r *ProjectRegistry) Bootstrap(ctx context.Context) error {
	projects, err := r.repo.List(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.cache = projects
	r.mu.Unlock()

	logging.FromContext(ctx, "projects.bootstrap").Info("project cache loaded", "count", len(projects))
	return nil
}

// List returns a snapshot copy of the cache.
func (r *ProjectRegistry) List() []domain.Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Project, len(r.cache))
	copy(out, r.cache)
	return out
}

// Len returns the number of cached projects.
func (r *ProjectRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

// Create persists a new project and, only once that succeeds, appends it to
// the cache.
func (r *ProjectRegistry) Create(ctx context.Context, np domain.NewProject) (*domain.Project, error) {
	p := domain.Project{
		ProjectID:   uuid.New().String(),
		Name:        np.Name,
		Description: np.Description,
		CreatedAt:   storage.Timestamp(r.now()),
	}

	if err := r.repo.Create(ctx, &p); err != nil {
		logging.FromContext(ctx, "projects.create").Error("persist project failed", "error", err)
		return nil, err
	}

	r.mu.Lock()
	r.cache = append(r.cache, p)
	r.mu.Unlock()

	logging.FromContext(ctx, "projects.create").Info("project created", "project_id", p.ProjectID)
	return &p, nil
}

// Audit compares the cached project count with the stored one. It never
// modifies the cache.
func (r *ProjectRegistry) Audit(ctx context.Context) (domain.AuditResult, error) {
	stored, err := r.repo.Count(ctx)
	if err != nil {
		return domain.AuditResult{}, err
	}
	return domain.AuditResult{Cached: r.Len(), Stored: stored}, nil
}
