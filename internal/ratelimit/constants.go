package ratelimit

import "time"

// =============================================================================
// Redis Constants
// =============================================================================

const (
	// KeyNamespace prefixes every key the Redis store writes
	KeyNamespace = "catchbot"

	// AttemptsPrefix and LockPrefix namespace the sorted sets and bucket locks
	AttemptsPrefix = "attempts"
	LockPrefix     = "lock"

	// DefaultLockTTL bounds how long a crashed holder can block a bucket
	DefaultLockTTL = 10 * time.Second

	// DefaultLockWait bounds how long WithBucketLock waits for a busy bucket
	DefaultLockWait = 5 * time.Second

	// lockRetryInterval is the pause between lock acquisition attempts
	lockRetryInterval = 25 * time.Millisecond

	// DefaultAttemptTTL expires idle buckets; it must exceed the longest window
	DefaultAttemptTTL = 7 * 24 * time.Hour

	// redisConnectRetries is the number of pings before giving up at startup
	redisConnectRetries = 5
	redisConnectBackoff = time.Second
)

// releaseLockScript deletes the lock only when the caller still owns it
const releaseLockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgResolveSettingsFailed  = "failed to resolve scope settings: %w"
	ErrMsgCountAttemptsFailed    = "failed to count attempts: %w"
	ErrMsgOldestAttemptFailed    = "failed to read oldest attempt: %w"
	ErrMsgRecordAttemptFailed    = "failed to record attempt: %w"
	ErrMsgUpdateSettingsFailed   = "failed to update scope settings: %w"
	ErrMsgNoContextSettingsFixed = "no-context scope settings are fixed: %w"
	ErrMsgInvalidLimitFmt        = "attempt limit %d must be at least 1: %w"
	ErrMsgInvalidWindowFmt       = "window %d seconds must be at least 1: %w"
	ErrMsgLockTimeout            = "timed out waiting for bucket lock"
	ErrMsgRedisConnectFailed     = "failed to connect to redis at %s: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgRateLimited           = "Attempt rate limited"
	LogMsgRaceConditionDetected = "Race condition detected - bucket filled while waiting for lock"
	LogMsgAttemptRecorded       = "Attempt recorded"
	LogMsgSettingsUpdated       = "Scope settings updated"
	LogMsgRedisNotReady         = "Redis not ready, retrying"
	LogMsgRedisConnected        = "Connected to Redis"
	LogMsgLockReleaseFailed     = "Failed to release bucket lock"
	LogMsgAttemptsPurged        = "Expired attempts purged"
	LogMsgAttemptReleaseFailed  = "Failed to release unspent attempt"
)
