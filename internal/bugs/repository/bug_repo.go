package repository

import (
	"context"
	"errors"

	"github.com/kwekamelia/web-grp-lab/internal/bugs/domain"
	"github.com/kwekamelia/web-grp-lab/internal/bugs/filter"
	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

const bugColumns = "bug_id, title, description, reported_by, severity, status, assigned_to, project_id, created_at"

// BugRepository provides persistence operations for bugs
type BugRepository struct {
	gw storage.Gateway
}

// NewBugRepository creates a new bug repository
func NewBugRepository(gw storage.Gateway) *BugRepository {
	return &BugRepository{gw: gw}
}

func scanBug(r storage.Row) (*domain.Bug, error) {
	var b domain.Bug
	err := r.Scan(
		&b.BugID,
		&b.Title,
		&b.Description,
		&b.ReportedBy,
		&b.Severity,
		&b.Status,
		&b.AssignedTo,
		&b.ProjectID,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func notFound(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return domain.ErrBugNotFound
	}
	return err
}

// Create inserts a fully populated bug.
func (r *BugRepository) Create(ctx context.Context, b *domain.Bug) error {
	const q = `
INSERT INTO bugs (bug_id, title, description, reported_by, severity, status, assigned_to, project_id, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.gw.Execute(ctx, q,
		b.BugID,
		b.Title,
		b.Description,
		b.ReportedBy,
		b.Severity,
		b.Status,
		b.AssignedTo,
		b.ProjectID,
		b.CreatedAt,
	)
	return err
}

// List returns every bug matching p, in storage order.
func (r *BugRepository) List(ctx context.Context, p filter.Predicate) ([]domain.Bug, error) {
	q := p.Apply("SELECT " + bugColumns + " FROM bugs")

	out := make([]domain.Bug, 0, 16)
	err := r.gw.FetchAll(ctx, q, func(row storage.Row) error {
		b, err := scanBug(row)
		if err != nil {
			return err
		}
		out = append(out, *b)
		return nil
	}, p.Args...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns the bug with the given id or domain.ErrBugNotFound.
func (r *BugRepository) GetByID(ctx context.Context, bugID string) (*domain.Bug, error) {
	b, err := scanBug(r.gw.FetchOne(ctx, "SELECT "+bugColumns+" FROM bugs WHERE bug_id = ?", bugID))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// Update merges u into the stored row in a single statement: a nil field
// binds NULL and COALESCE keeps the current column value. bug_id, reported_by
// and created_at are never written.
func (r *BugRepository) Update(ctx context.Context, bugID string, u domain.UpdateBug) (*domain.Bug, error) {
	const q = `
UPDATE bugs
SET title = COALESCE(?, title),
    description = COALESCE(?, description),
    severity = COALESCE(?, severity),
    status = COALESCE(?, status),
    assigned_to = COALESCE(?, assigned_to),
    project_id = COALESCE(?, project_id)
WHERE bug_id = ?
RETURNING ` + bugColumns

	row := r.gw.FetchOne(ctx, q,
		u.Title,
		u.Description,
		u.Severity,
		u.Status,
		u.AssignedTo,
		u.ProjectID,
		bugID,
	)
	b, err := scanBug(row)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// Delete removes a bug. It reports false when no row matched.
func (r *BugRepository) Delete(ctx context.Context, bugID string) (bool, error) {
	n, err := r.gw.Execute(ctx, "DELETE FROM bugs WHERE bug_id = ?", bugID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Assign sets assigned_to unconditionally. It reports false when no row matched.
func (r *BugRepository) Assign(ctx context.Context, bugID, developerID string) (bool, error) {
	n, err := r.gw.Execute(ctx, "UPDATE bugs SET assigned_to = ? WHERE bug_id = ?", developerID, bugID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
