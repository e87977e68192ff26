package domain

// Project is a named grouping container for bugs. ProjectID and CreatedAt are
// assigned by the registry and never change.
type Project struct {
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// NewProject is the creation input.
type NewProject struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AuditResult compares the cache against the durable store.
type AuditResult struct {
	Cached int   `json:"cached"`
	Stored int64 `json:"stored"`
}

// Drift reports whether the cache and the store disagree on the project count.
func (a AuditResult) Drift() bool { return int64(a.Cached) != a.Stored }
