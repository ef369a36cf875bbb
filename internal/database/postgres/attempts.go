package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/repository"
)

// AttemptRepository implements repository.Attempts and repository.ScopeSettings for PostgreSQL
type AttemptRepository struct {
	store
}

// NewAttemptRepository creates a new AttemptRepository
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{store: newStore(pool)}
}

// WithBucketLock runs fn under an advisory lock on the bucket. Advisory locks
// work even when no attempt row exists yet. With a caller tx the lock and the
// attempts ride on it, so no second connection is taken from the pool.
func (r *AttemptRepository) WithBucketLock(ctx context.Context, accountID, bucket string, tx repository.AttemptTx, fn func(ctx context.Context, ops repository.AttemptOps) error) error {
	if tx != nil {
		if err := tx.LockBucket(ctx, accountID, bucket); err != nil {
			return err
		}
		return fn(ctx, tx)
	}

	own, err := r.begin(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, own)

	if err := own.LockBucket(ctx, accountID, bucket); err != nil {
		return err
	}

	if err := fn(ctx, own); err != nil {
		return err
	}

	// Commit releases the advisory lock
	return own.Commit(ctx)
}

// Transactional is true: attempts written through a caller tx roll back with it
func (r *AttemptRepository) Transactional() bool {
	return true
}

// RemoveAttempt deletes one attempt matching the record
func (r *AttemptRepository) RemoveAttempt(ctx context.Context, record domain.AttemptRecord) error {
	_, err := r.db.Exec(ctx, SQLRemoveAttempt, record.AccountID, record.Bucket, record.AttemptedAt)
	return wrapErr(opRemoveAttempt, err)
}

// LockBucket takes the advisory transaction lock of the bucket
func (t *txQueries) LockBucket(ctx context.Context, accountID, bucket string) error {
	if _, err := t.tx.Exec(ctx, SQLAdvisoryLock, hashLockKey(accountID, bucket)); err != nil {
		return wrapErr(opAdvisoryLock, err)
	}
	return nil
}

// DeleteAttemptsBefore purges attempt records older than cutoff
func (r *AttemptRepository) DeleteAttemptsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, SQLDeleteAttemptsBefore, cutoff)
	if err != nil {
		return 0, wrapErr(opDeleteAttempts, err)
	}
	return tag.RowsAffected(), nil
}

// CountAttemptsSince counts attempts at or after since
func (q queries) CountAttemptsSince(ctx context.Context, accountID, bucket string, since time.Time) (int, error) {
	var count int
	if err := q.db.QueryRow(ctx, SQLCountAttemptsSince, accountID, bucket, since).Scan(&count); err != nil {
		return 0, wrapErr(opCountAttempts, err)
	}
	return count, nil
}

// OldestAttemptSince returns the earliest attempt at or after since
func (q queries) OldestAttemptSince(ctx context.Context, accountID, bucket string, since time.Time) (*time.Time, error) {
	var oldest *time.Time
	if err := q.db.QueryRow(ctx, SQLOldestAttemptSince, accountID, bucket, since).Scan(&oldest); err != nil {
		return nil, wrapErr(opOldestAttempt, err)
	}
	return oldest, nil
}

// InsertAttempt appends one attempt record
func (q queries) InsertAttempt(ctx context.Context, record domain.AttemptRecord) error {
	_, err := q.db.Exec(ctx, SQLInsertAttempt, record.AccountID, record.Bucket, record.AttemptedAt)
	return wrapErr(opInsertAttempt, err)
}

// EnsureScopeSettings inserts the defaults when the scope has no row, then reads it
func (q queries) EnsureScopeSettings(ctx context.Context, defaults domain.ScopeSettings) (*domain.ScopeSettings, error) {
	if _, err := q.db.Exec(ctx, SQLEnsureScopeSettings, defaults.ScopeKey, defaults.AttemptLimit, defaults.WindowSeconds); err != nil {
		return nil, wrapErr(opEnsureScope, err)
	}

	var s domain.ScopeSettings
	if err := q.db.QueryRow(ctx, SQLGetScopeSettings, defaults.ScopeKey).Scan(&s.ScopeKey, &s.AttemptLimit, &s.WindowSeconds); err != nil {
		return nil, wrapErr(opEnsureScope, err)
	}
	return &s, nil
}

// UpsertScopeSettings writes the settings of a scope
func (q queries) UpsertScopeSettings(ctx context.Context, settings domain.ScopeSettings) error {
	_, err := q.db.Exec(ctx, SQLUpsertScopeSettings, settings.ScopeKey, settings.AttemptLimit, settings.WindowSeconds)
	return wrapErr(opUpsertScope, err)
}
