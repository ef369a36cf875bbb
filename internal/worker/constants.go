package worker

import "time"

// Pool defaults
const (
	DefaultWorkers    = 2
	DefaultQueueSize  = 16
	DefaultJobTimeout = 5 * time.Minute
)

// Retention defaults
const (
	DefaultRetentionMaxAge = 7 * 24 * time.Hour
	metricOpRetention      = "retention"
)

// Log messages
const (
	LogMsgWorkerJobFailed    = "Worker job failed"
	LogMsgWorkerJobDropped   = "Worker queue full, job dropped"
	LogMsgPoolStopped        = "Worker pool stopped"
	LogMsgRetentionStarting  = "Attempt retention starting"
	LogMsgRetentionCompleted = "Attempt retention completed"
)

// Error messages
const (
	ErrMsgRetentionFailed = "failed to purge attempts before %s: %w"
	ErrMsgInvalidMaxAge   = "retention max age must be positive, got %s"
)
