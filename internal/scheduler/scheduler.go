package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/worker"
)

// Enqueuer accepts jobs for asynchronous execution
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Scheduler enqueues jobs on fixed intervals
type Scheduler struct {
	pool Enqueuer
	quit chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule enqueues job every interval until Stop or ctx is done. With
// runNow the first run is enqueued immediately.
func (s *Scheduler) Schedule(ctx context.Context, interval time.Duration, job worker.Job, runNow bool) {
	logger.FromContext(ctx).Info("Job scheduled", "job", job.Name(), "interval", interval)
	if runNow {
		s.pool.Enqueue(job)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// a full queue drops this tick; the next one retries
				s.pool.Enqueue(job)
			case <-ctx.Done():
				return
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}
