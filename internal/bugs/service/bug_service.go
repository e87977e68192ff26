package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kwekamelia/web-grp-lab/internal/bugs/domain"
	"github.com/kwekamelia/web-grp-lab/internal/bugs/filter"
	"github.com/kwekamelia/web-grp-lab/internal/bugs/repository"
	"github.com/kwekamelia/web-grp-lab/internal/logging"
	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

// BugService handles the bug lifecycle: create, query, merge-update, delete
// and assignment.
type BugService struct {
	repo *repository.BugRepository
	now  func() time.Time
}

// NewBugService creates a new BugService
func NewBugService(repo *repository.BugRepository) *BugService {
	return &BugService{
		repo: repo,
		now:  time.Now,
	}
}

// Create stores a new bug with a fresh id and creation time. Status is always
// "open" and the bug starts unassigned.
func (s *BugService) Create(ctx context.Context, nb domain.NewBug) (*domain.Bug, error) {
	bug := &domain.Bug{
		BugID:       uuid.New().String(),
		Title:       nb.Title,
		Description: nb.Description,
		ReportedBy:  nb.ReportedBy,
		Severity:    nb.Severity,
		Status:      domain.StatusOpen,
		AssignedTo:  nil,
		ProjectID:   nb.ProjectID,
		CreatedAt:   storage.Timestamp(s.now()),
	}

	if err := s.repo.Create(ctx, bug); err != nil {
		logging.FromContext(ctx, "bugs.create").Error("persist bug failed", "error", err)
		return nil, err
	}

	logging.FromContext(ctx, "bugs.create").Info("bug created", "bug_id", bug.BugID)
	return bug, nil
}

// List returns the bugs matching every recognised criterion.
func (s *BugService) List(ctx context.Context, criteria []filter.Criterion) ([]domain.Bug, error) {
	return s.repo.List(ctx, filter.Build(criteria))
}

// Get retrieves a bug by its ID
func (s *BugService) Get(ctx context.Context, bugID string) (*domain.Bug, error) {
	return s.repo.GetByID(ctx, bugID)
}

// Update applies a partial update. Fields left nil keep their stored values.
func (s *BugService) Update(ctx context.Context, bugID string, u domain.UpdateBug) (*domain.Bug, error) {
	bug, err := s.repo.Update(ctx, bugID, u)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx, "bugs.update").Info("bug updated", "bug_id", bugID, "status", bug.Status)
	return bug, nil
}

// Delete removes a bug. Referencing projects are not touched.
func (s *BugService) Delete(ctx context.Context, bugID string) error {
	ok, err := s.repo.Delete(ctx, bugID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrBugNotFound
	}
	logging.FromContext(ctx, "bugs.delete").Info("bug deleted", "bug_id", bugID)
	return nil
}

// Assign sets the bug's assignee. developerID is not checked against any
// user directory.
func (s *BugService) Assign(ctx context.Context, bugID, developerID string) error {
	ok, err := s.repo.Assign(ctx, bugID, developerID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrBugNotFound
	}
	logging.FromContext(ctx, "bugs.assign").Info("bug assigned", "bug_id", bugID, "developer_id", developerID)
	return nil
}
