package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/metrics"
)

// AttemptPurger deletes rate-limit attempt records older than a cutoff
type AttemptPurger interface {
	DeleteAttemptsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionJob purges attempt records that no window can still count.
// MaxAge must be at least the largest configured window.
type RetentionJob struct {
	store  AttemptPurger
	maxAge time.Duration
	now    func() time.Time
}

// NewRetentionJob creates the purge job
func NewRetentionJob(store AttemptPurger, maxAge time.Duration) (*RetentionJob, error) {
	if maxAge <= 0 {
		return nil, fmt.Errorf(ErrMsgInvalidMaxAge, maxAge)
	}
	return &RetentionJob{store: store, maxAge: maxAge, now: time.Now}, nil
}

// Name implements Job
func (j *RetentionJob) Name() string { return "attempt_retention" }

// Process implements Job
func (j *RetentionJob) Process(ctx context.Context) (err error) {
	defer func() { metrics.RecordFailure(metricOpRetention, err) }()

	log := logger.FromContext(ctx)
	cutoff := j.now().UTC().Add(-j.maxAge)
	log.Info(LogMsgRetentionStarting, "cutoff", cutoff)

	purged, err := j.store.DeleteAttemptsBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf(ErrMsgRetentionFailed, cutoff.Format(time.RFC3339), err)
	}

	metrics.AttemptsPurged.Add(float64(purged))
	log.Info(LogMsgRetentionCompleted, "purged", purged)
	return nil
}
