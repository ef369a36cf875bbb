package bootstrap

import "time"

// File system permissions
const (
	DirPermission     = 0o755
	LogFilePermission = 0o644
)

// Log file rotation
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// LogFileRetentionCount is the number of session logs kept, including the new one
	LogFileRetentionCount = 9
)

// Timeouts
const (
	ShutdownTimeout = 10 * time.Second
	StartupTimeout  = 30 * time.Second
)

// Retention worker pool
const (
	RetentionWorkers   = 1
	RetentionQueueSize = 4
)

// Log messages
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting CatchBot"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgOpeningStore        = "Opening store"
	LogMsgRedisRateLimiting   = "Rate limit attempts stored in Redis"
	LogMsgSyncingCatalog      = "Syncing catalog from JSON config"
	LogMsgCatalogSynced       = "Catalog synced"
	LogMsgRetentionScheduled  = "Attempt retention scheduled"
	LogMsgShuttingDown        = "Shutting down"
	LogMsgServerForcedStop    = "Server forced to shutdown"
	LogMsgStoreCloseFailed    = "Failed to close store"
	LogMsgStopped             = "Shutdown complete"
	LogMsgDeleteOldLogFailed  = "Failed to delete old log file"
)

// Error messages
const (
	ErrMsgCreateLogDirFailed = "failed to create logs directory: %w"
	ErrMsgOpenLogFileFailed  = "failed to open log file: %w"
	ErrMsgOpenStoreFailed    = "failed to open %s store: %w"
	ErrMsgMigrateFailed      = "failed to migrate %s store: %w"
	ErrMsgRedisFailed        = "failed to connect to redis: %w"
	ErrMsgSyncCatalogFailed  = "failed to sync catalog %s: %w"
	ErrMsgRetentionJobFailed = "failed to create retention job: %w"
	ErrMsgUnsupportedDriver  = "unsupported DB_DRIVER %q"
)
