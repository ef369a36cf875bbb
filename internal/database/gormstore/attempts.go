package gormstore

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/repository"
)

// AttemptRepository implements repository.Attempts and repository.ScopeSettings using GORM
type AttemptRepository struct {
	store
}

// WithBucketLock runs fn holding an exclusive lock on the bucket. PostgreSQL
// takes an advisory transaction lock; SQLite uses an in-process keyed mutex
// because its single connection cannot hold a lock transaction open while fn
// runs its own. With a caller tx the lock and the attempts ride on it.
func (r *AttemptRepository) WithBucketLock(ctx context.Context, accountID, bucket string, tx repository.AttemptTx, fn func(ctx context.Context, ops repository.AttemptOps) error) error {
	if tx != nil {
		if err := tx.LockBucket(ctx, accountID, bucket); err != nil {
			return err
		}
		return fn(ctx, tx)
	}

	if !r.isPostgres() {
		unlock := r.locks.Lock(bucketKey(accountID, bucket))
		defer unlock()
		return fn(ctx, r.queries)
	}

	return r.with(ctx).Transaction(func(db *gorm.DB) error {
		own := &txQueries{queries: queries{db: db}}
		if err := own.LockBucket(ctx, accountID, bucket); err != nil {
			return err
		}
		return fn(ctx, own)
	})
}

// Transactional is true: attempts written through a caller tx roll back with it
func (r *AttemptRepository) Transactional() bool {
	return true
}

// RemoveAttempt deletes one attempt matching the record
func (r *AttemptRepository) RemoveAttempt(ctx context.Context, record domain.AttemptRecord) error {
	var row AttemptRecord
	err := r.with(ctx).
		Where("account_id = ? AND bucket = ? AND attempted_at = ?", record.AccountID, record.Bucket, record.AttemptedAt.UTC()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return wrapErr(opRemoveAttempt, err)
	}
	return wrapErr(opRemoveAttempt, r.with(ctx).Delete(&AttemptRecord{}, row.AttemptID).Error)
}

// LockBucket takes the advisory transaction lock of the bucket. On SQLite the
// open transaction already owns the only connection, so there is nothing to take.
func (t *txQueries) LockBucket(ctx context.Context, accountID, bucket string) error {
	if t.db.Dialector.Name() != dialectPostgres {
		return nil
	}
	if err := t.with(ctx).Exec("SELECT pg_advisory_xact_lock(?)", lockKey(bucketKey(accountID, bucket))).Error; err != nil {
		return wrapErr(opAdvisoryLock, err)
	}
	return nil
}

func bucketKey(accountID, bucket string) string {
	return accountID + ":" + bucket
}

// DeleteAttemptsBefore purges attempt records older than cutoff
func (r *AttemptRepository) DeleteAttemptsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.with(ctx).Where("attempted_at < ?", cutoff.UTC()).Delete(&AttemptRecord{})
	if result.Error != nil {
		return 0, wrapErr(opDeleteAttempts, result.Error)
	}
	return result.RowsAffected, nil
}

func lockKey(key string) int64 {
	h := sha256.Sum256([]byte(key))
	return int64(binary.BigEndian.Uint64(h[:8]) & 0x7FFFFFFFFFFFFFFF)
}

// CountAttemptsSince counts attempts at or after since
func (q queries) CountAttemptsSince(ctx context.Context, accountID, bucket string, since time.Time) (int, error) {
	var n int64
	err := q.with(ctx).
		Model(&AttemptRecord{}).
		Where("account_id = ? AND bucket = ? AND attempted_at >= ?", accountID, bucket, since.UTC()).
		Count(&n).Error
	if err != nil {
		return 0, wrapErr(opCountAttempts, err)
	}
	return int(n), nil
}

// OldestAttemptSince returns the earliest attempt at or after since
func (q queries) OldestAttemptSince(ctx context.Context, accountID, bucket string, since time.Time) (*time.Time, error) {
	var row AttemptRecord
	err := q.with(ctx).
		Where("account_id = ? AND bucket = ? AND attempted_at >= ?", accountID, bucket, since.UTC()).
		Order("attempted_at ASC").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapErr(opOldestAttempt, err)
	}
	oldest := row.AttemptedAt
	return &oldest, nil
}

// InsertAttempt appends one attempt record
func (q queries) InsertAttempt(ctx context.Context, record domain.AttemptRecord) error {
	err := q.with(ctx).Create(&AttemptRecord{
		AccountID:   record.AccountID,
		Bucket:      record.Bucket,
		AttemptedAt: record.AttemptedAt.UTC(),
	}).Error
	return wrapErr(opInsertAttempt, err)
}

// EnsureScopeSettings inserts the defaults when the scope has no row, then reads it
func (q queries) EnsureScopeSettings(ctx context.Context, defaults domain.ScopeSettings) (*domain.ScopeSettings, error) {
	err := q.with(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "scope_key"}}, DoNothing: true}).
		Create(&ScopeSetting{
			ScopeKey:      defaults.ScopeKey,
			AttemptLimit:  defaults.AttemptLimit,
			WindowSeconds: defaults.WindowSeconds,
		}).Error
	if err != nil {
		return nil, wrapErr(opEnsureScope, err)
	}

	var row ScopeSetting
	if err := q.with(ctx).Where("scope_key = ?", defaults.ScopeKey).Take(&row).Error; err != nil {
		return nil, wrapErr(opEnsureScope, err)
	}
	return &domain.ScopeSettings{ScopeKey: row.ScopeKey, AttemptLimit: row.AttemptLimit, WindowSeconds: row.WindowSeconds}, nil
}

// UpsertScopeSettings writes the settings of a scope
func (q queries) UpsertScopeSettings(ctx context.Context, settings domain.ScopeSettings) error {
	err := q.with(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"attempt_limit", "window_seconds"}),
		}).
		Create(&ScopeSetting{
			ScopeKey:      settings.ScopeKey,
			AttemptLimit:  settings.AttemptLimit,
			WindowSeconds: settings.WindowSeconds,
		}).Error
	return wrapErr(opUpsertScope, err)
}
