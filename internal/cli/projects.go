package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/kwekamelia/web-grp-lab/internal/api/http"
	"github.com/kwekamelia/web-grp-lab/internal/jobs"
	"github.com/kwekamelia/web-grp-lab/internal/projects/domain"
	"github.com/kwekamelia/web-grp-lab/internal/projects/repository"
	"github.com/kwekamelia/web-grp-lab/internal/storage"
)

type auditOptions struct {
	server string
}

func NewProjectsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect projects",
	}

	opts := &auditOptions{}
	audit := &cobra.Command{
		Use:   "audit",
		Short: "Compare a running server's project cache with the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), rootOpts, func(gw storage.Gateway) error {
				a := &serverAuditor{
					server: strings.TrimRight(opts.server, "/"),
					repo:   repository.NewProjectRepository(gw),
					client: &http.Client{Timeout: 5 * time.Second},
				}
				res, err := jobs.RunCacheAudit(cmd.Context(), a)
				if err != nil {
					return err
				}

				text := fmt.Sprintf("cached=%d stored=%d consistent=%t", res.Cached, res.Stored, !res.Drift())
				if err := emit(cmd.OutOrStdout(), rootOpts, map[string]any{
					"cached":     res.Cached,
					"stored":     res.Stored,
					"consistent": !res.Drift(),
				}, text); err != nil {
					return err
				}
				if res.Drift() {
					return fmt.Errorf("project cache drift detected")
				}
				return nil
			})
		},
	}
	audit.Flags().StringVar(&opts.server, "server", "http://localhost:8080", "base URL of the running API")

	cmd.AddCommand(audit)
	return cmd
}

// serverAuditor reads the cache size from a server's health endpoint and the
// stored count from the database.
type serverAuditor struct {
	server string
	repo   *repository.ProjectRepository
	client *http.Client
}

func (a *serverAuditor) Audit(ctx context.Context) (domain.AuditResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.server+"/health", nil)
	if err != nil {
		return domain.AuditResult{}, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return domain.AuditResult{}, fmt.Errorf("query health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.AuditResult{}, fmt.Errorf("query health: status %d", resp.StatusCode)
	}
	var health httpapi.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return domain.AuditResult{}, fmt.Errorf("decode health: %w", err)
	}

	stored, err := a.repo.Count(ctx)
	if err != nil {
		return domain.AuditResult{}, err
	}
	return domain.AuditResult{Cached: health.ProjectsCached, Stored: stored}, nil
}
