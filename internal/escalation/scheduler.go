package escalation

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Escalator is the slice of the leave request service the scheduler
// drives.
type Escalator interface {
	EscalateOverdue(ctx context.Context, now time.Time) (int, error)
}

// Scheduler periodically sweeps overdue PENDING requests and reroutes
// them. Sweeps are safe to rerun: the underlying escalation is a
// deadline-guarded update, so a tick that fires twice, or two scheduler
// replicas racing on the same batch, escalate each request exactly once.
type Scheduler struct {
	escalator Escalator
	interval  time.Duration
	logger    *zap.Logger
}

func NewScheduler(escalator Escalator, interval time.Duration, logger ...*zap.Logger) *Scheduler {
	l := zap.L().Named("escalation.scheduler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("escalation.scheduler")
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{escalator: escalator, interval: interval, logger: l}
}

// Run blocks until ctx is cancelled. A failed sweep is logged and the
// loop keeps ticking; the next sweep picks up whatever is still
// overdue.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("escalation scheduler started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("escalation scheduler stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	now := time.Now().UTC()
	escalated, err := s.escalator.EscalateOverdue(ctx, now)
	if err != nil {
		s.logger.Error("escalation sweep failed", zap.Error(err))
		return
	}
	if escalated > 0 {
		s.logger.Info("escalation sweep completed", zap.Int("escalated", escalated))
	}
}
