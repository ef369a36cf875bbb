package bootstrap

import (
	"context"
	"fmt"

	"github.com/osse101/catchbot/internal/config"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/scheduler"
	"github.com/osse101/catchbot/internal/worker"
)

// Retention is the running attempt-purge machinery
type Retention struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
}

// StartRetention schedules the attempt purge every cfg.RetentionInterval.
// A non-positive interval disables it and returns nil.
func StartRetention(ctx context.Context, cfg *config.Config, repos *Repositories) (*Retention, error) {
	if cfg.RetentionInterval <= 0 {
		return nil, nil
	}

	job, err := worker.NewRetentionJob(repos.Attempts, cfg.RetentionMaxAge)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRetentionJobFailed, err)
	}

	pool := worker.NewPool(RetentionWorkers, RetentionQueueSize)
	pool.Start(ctx)
	sched := scheduler.New(pool)
	sched.Schedule(ctx, cfg.RetentionInterval, job, true)

	logger.FromContext(ctx).Info(LogMsgRetentionScheduled, "interval", cfg.RetentionInterval, "max_age", cfg.RetentionMaxAge)
	return &Retention{Pool: pool, Scheduler: sched}, nil
}

// Stop stops scheduling, then waits for a running purge
func (r *Retention) Stop() {
	if r == nil {
		return
	}
	r.Scheduler.Stop()
	r.Pool.Stop()
}
