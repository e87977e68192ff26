package jobs

import (
	"context"

	"github.com/kwekamelia/web-grp-lab/internal/logging"
	"github.com/kwekamelia/web-grp-lab/internal/projects/domain"
)

const CacheAuditJob = "projects.cache_audit"

// Auditor compares cached projects against the store.
type Auditor interface {
	Audit(ctx context.Context) (domain.AuditResult, error)
}

// CacheAudit returns a job that logs drift between the project cache and the
// projects table. Drift is reported, not repaired.
func CacheAudit(a Auditor) func(ctx context.Context) {
	return func(ctx context.Context) {
		RunCacheAudit(ctx, a)
	}
}

// RunCacheAudit performs one audit pass and returns its result.
func RunCacheAudit(ctx context.Context, a Auditor) (domain.AuditResult, error) {
	log := logging.FromContext(ctx, CacheAuditJob)

	res, err := a.Audit(ctx)
	if err != nil {
		log.Error("cache audit failed", "error", err)
		return res, err
	}

	if res.Drift() {
		log.Warn("project cache drift", "cached", res.Cached, "stored", res.Stored)
	} else {
		log.Debug("project cache consistent", "count", res.Cached)
	}
	return res, nil
}
