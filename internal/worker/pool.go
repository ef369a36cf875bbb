package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/catchbot/internal/logger"
)

// Job is a unit of background work
type Job interface {
	Name() string
	Process(ctx context.Context) error
}

// Pool runs jobs on a fixed set of goroutines
type Pool struct {
	workers    int
	jobTimeout time.Duration
	jobQueue   chan Job
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
	baseCtx    context.Context
}

// NewPool creates a new worker pool. Non-positive sizes fall back to defaults.
func NewPool(workers, queueSize int) *Pool {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if queueSize < 1 {
		queueSize = DefaultQueueSize
	}
	return &Pool{
		workers:    workers,
		jobTimeout: DefaultJobTimeout,
		jobQueue:   make(chan Job, queueSize),
		quit:       make(chan struct{}),
		baseCtx:    context.Background(),
	}
}

// WithJobTimeout bounds each job's context
func (p *Pool) WithJobTimeout(d time.Duration) *Pool {
	if d > 0 {
		p.jobTimeout = d
	}
	return p
}

// Start launches the workers. ctx is the parent of every job context and
// carries the logger.
func (p *Pool) Start(ctx context.Context) {
	p.baseCtx = ctx
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			return
		}
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(p.baseCtx, p.jobTimeout)
	defer cancel()
	if err := job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "job", job.Name(), "error", err)
	}
}

// Enqueue adds a job without blocking. It reports false when the queue is
// full or the pool is stopped.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.FromContext(p.baseCtx).Warn(LogMsgWorkerJobDropped, "job", job.Name())
		return false
	}
}

// Stop stops the workers and waits for in-flight jobs. Queued jobs are discarded.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.wg.Wait()
		logger.FromContext(p.baseCtx).Info(LogMsgPoolStopped)
	})
}
