package repository

import (
	"context"
	"time"

	"github.com/osse101/catchbot/internal/domain"
)

// AttemptOps counts and appends attempt records of one bucket
type AttemptOps interface {
	CountAttemptsSince(ctx context.Context, accountID, bucket string, since time.Time) (int, error)
	// OldestAttemptSince returns nil when there is no attempt in the window.
	OldestAttemptSince(ctx context.Context, accountID, bucket string, since time.Time) (*time.Time, error)
	InsertAttempt(ctx context.Context, record domain.AttemptRecord) error
}

// AttemptTx is a caller's transaction that can also serialize attempts
type AttemptTx interface {
	AttemptOps

	// LockBucket blocks until the transaction holds an exclusive lock on the
	// (account, bucket) pair. The lock is released when the transaction ends.
	LockBucket(ctx context.Context, accountID, bucket string) error
}

// Attempts defines the interface for attempt storage
type Attempts interface {
	AttemptOps

	// WithBucketLock runs fn while holding an exclusive lock on the
	// (account, bucket) pair. Stores in the caller's database bind the lock
	// and ops to tx, so attempts commit or roll back with it. Other stores
	// lock on their own and ignore tx. A nil tx runs fn in a transaction of
	// the store's own.
	WithBucketLock(ctx context.Context, accountID, bucket string, tx AttemptTx, fn func(ctx context.Context, ops AttemptOps) error) error

	// Transactional reports whether attempts written through a bound tx
	// roll back with it.
	Transactional() bool

	// RemoveAttempt deletes one attempt written outside the caller's transaction.
	RemoveAttempt(ctx context.Context, record domain.AttemptRecord) error

	// DeleteAttemptsBefore purges records older than cutoff.
	DeleteAttemptsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// ScopeSettings defines the interface for per-scope rate limit settings
type ScopeSettings interface {
	// EnsureScopeSettings inserts defaults if the row is missing, then reads it.
	EnsureScopeSettings(ctx context.Context, defaults domain.ScopeSettings) (*domain.ScopeSettings, error)
	UpsertScopeSettings(ctx context.Context, settings domain.ScopeSettings) error
}
