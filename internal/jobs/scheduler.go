// Package jobs runs periodic background tasks on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	c *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{c: cron.New(cron.WithSeconds())}
}

// Add registers fn under a six-field cron spec (seconds first). An empty spec
// leaves the job disabled.
func (s *Scheduler) Add(name, spec string, fn func(ctx context.Context)) error {
	if spec == "" {
		slog.Info("cron job disabled", "job", name)
		return nil
	}

	_, err := s.c.AddFunc(spec, func() {
		fn(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}

	slog.Info("cron job scheduled", "job", name, "spec", spec)
	return nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop halts scheduling and waits for running jobs or ctx, whichever is first.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.c.Stop().Done():
	case <-ctx.Done():
	}
}
