// Package scheduler runs periodic maintenance against a scribe service.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/aretw0/scribe/internal/metrics"
)

// Prunable is the part of core.Service the pruner needs.
type Prunable interface {
	Prune(ctx context.Context) ([]string, error)
}

// Pruner removes orphaned signatures on a cron schedule.
type Pruner struct {
	svc      Prunable
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPruner validates schedule (standard five-field cron or a descriptor
// such as "@hourly") and returns a stopped pruner.
func NewPruner(svc Prunable, schedule string, logger *slog.Logger) (*Pruner, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	p := &Pruner{
		svc:      svc,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
	if _, err := p.cron.AddFunc(schedule, func() {
		p.RunOnce(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("invalid prune schedule %q: %w", schedule, err)
	}
	return p, nil
}

// Start runs the schedule in the background.
func (p *Pruner) Start() {
	p.logger.Info("prune scheduled", "schedule", p.schedule)
	p.cron.Start()
}

// Stop halts the schedule and waits for a running prune to finish or ctx to end.
func (p *Pruner) Stop(ctx context.Context) {
	done := p.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce prunes immediately and reports how many signatures were removed.
func (p *Pruner) RunOnce(ctx context.Context) int {
	removed, err := p.svc.Prune(ctx)
	if err != nil {
		p.logger.Error("prune failed", "error", err)
		return 0
	}
	metrics.RecordPruned(len(removed))
	if len(removed) > 0 {
		p.logger.Info("prune completed", "removed", len(removed))
	}
	return len(removed)
}
