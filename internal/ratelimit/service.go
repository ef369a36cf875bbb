package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/repository"
	"github.com/osse101/catchbot/internal/utils"
)

// Status is the outcome of a rate-limit check
type Status struct {
	Allowed              bool   `json:"allowed"`
	Remaining            int    `json:"remaining"`
	Limit                int    `json:"limit"`
	WindowSeconds        int    `json:"window_seconds"`
	SecondsUntilNextSlot int64  `json:"seconds_until_next_slot"`
	Bucket               string `json:"bucket"`
}

// Service limits attempts per (account, scope) over a rolling window
type Service interface {
	// CheckAllowed reports whether an attempt made now would be allowed (unlocked read)
	CheckAllowed(ctx context.Context, accountID string, scope domain.Scope) (*Status, error)

	// RecordAttempt appends an attempt at the current time
	RecordAttempt(ctx context.Context, accountID string, scope domain.Scope) error

	// Admit resolves the scope and rejects the attempt early when the bucket
	// is full (unlocked read). Call it before opening the work's transaction.
	Admit(ctx context.Context, accountID string, scope domain.Scope) (*Admission, error)

	// Claim rechecks the bucket under its lock and records the attempt. With
	// a transactional store the lock and the record ride on tx and commit
	// with the work; otherwise the returned Slot undoes the record on Release
	// unless Keep was called. Concurrent callers on one bucket serialize.
	Claim(ctx context.Context, adm *Admission, tx repository.AttemptTx) (*Slot, error)

	// GetSettings returns the settings in force for scope
	GetSettings(ctx context.Context, scope domain.Scope) (domain.ScopeSettings, error)

	// UpdateSettings changes a guild scope's limit and window (admin)
	UpdateSettings(ctx context.Context, scope domain.Scope, limit, windowSeconds int) (domain.ScopeSettings, error)
}

type service struct {
	store    repository.Attempts
	settings *SettingsResolver
	now      func() time.Time
}

// Option configures the service
type Option func(*service)

// WithClock injects the time source
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

// NewService creates a rate limiter over an attempt store
func NewService(store repository.Attempts, settings *SettingsResolver, opts ...Option) Service {
	s := &service{
		store:    store,
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) GetSettings(ctx context.Context, scope domain.Scope) (domain.ScopeSettings, error) {
	return s.settings.Resolve(ctx, scope)
}

func (s *service) UpdateSettings(ctx context.Context, scope domain.Scope, limit, windowSeconds int) (domain.ScopeSettings, error) {
	settings, err := s.settings.Update(ctx, scope, limit, windowSeconds)
	if err != nil {
		return settings, err
	}
	logger.FromContext(ctx).Info(LogMsgSettingsUpdated, "scope", settings.ScopeKey, "limit", limit, "window_seconds", windowSeconds)
	return settings, nil
}

func (s *service) CheckAllowed(ctx context.Context, accountID string, scope domain.Scope) (*Status, error) {
	settings, err := s.settings.Resolve(ctx, scope)
	if err != nil {
		return nil, err
	}
	return s.check(ctx, s.store, accountID, scope, settings)
}

func (s *service) RecordAttempt(ctx context.Context, accountID string, scope domain.Scope) error {
	ctx = logger.WithAccount(ctx, accountID)
	_, err := s.record(ctx, s.store, accountID, scope)
	return err
}

// Admission is a passed unlocked check, carried into Claim
type Admission struct {
	Status    *Status
	accountID string
	scope     domain.Scope
	settings  domain.ScopeSettings
}

// Slot is a claimed attempt. Release undoes the attempt unless Keep was
// called first; it is safe to defer.
type Slot struct {
	undo func(ctx context.Context) error
	kept bool
}

// Keep marks the attempt as spent
func (sl *Slot) Keep() {
	sl.kept = true
}

// Release gives the attempt back when the work did not complete
func (sl *Slot) Release(ctx context.Context) {
	if sl == nil || sl.kept || sl.undo == nil {
		return
	}
	sl.kept = true
	if err := sl.undo(context.WithoutCancel(ctx)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgAttemptReleaseFailed, "error", err)
	}
}

func (s *service) Admit(ctx context.Context, accountID string, scope domain.Scope) (*Admission, error) {
	ctx = logger.WithAccount(ctx, accountID)

	settings, err := s.settings.Resolve(ctx, scope)
	if err != nil {
		return nil, err
	}

	status, err := s.check(ctx, s.store, accountID, scope, settings)
	if err != nil {
		return nil, err
	}
	if !status.Allowed {
		logger.FromContext(ctx).Debug(LogMsgRateLimited, "bucket", status.Bucket, "retry_in", status.SecondsUntilNextSlot)
		return nil, limitedError(status)
	}
	return &Admission{Status: status, accountID: accountID, scope: scope, settings: settings}, nil
}

// Claim is the locked half of check-then-lock: Admit rejects most blocked
// calls cheaply, then the bucket lock serializes the recheck and the insert.
func (s *service) Claim(ctx context.Context, adm *Admission, tx repository.AttemptTx) (*Slot, error) {
	ctx = logger.WithAccount(ctx, adm.accountID)
	bucket := adm.scope.BucketKey()

	var record domain.AttemptRecord
	err := s.store.WithBucketLock(ctx, adm.accountID, bucket, tx, func(ctx context.Context, ops repository.AttemptOps) error {
		status, err := s.check(ctx, ops, adm.accountID, adm.scope, adm.settings)
		if err != nil {
			return err
		}
		if !status.Allowed {
			logger.FromContext(ctx).Debug(LogMsgRaceConditionDetected, "bucket", status.Bucket)
			return limitedError(status)
		}

		record, err = s.record(ctx, ops, adm.accountID, adm.scope)
		return err
	})
	if err != nil {
		return nil, err
	}

	slot := &Slot{}
	if tx == nil || !s.store.Transactional() {
		slot.undo = func(ctx context.Context) error {
			return s.store.RemoveAttempt(ctx, record)
		}
	}
	return slot, nil
}

func (s *service) check(ctx context.Context, ops repository.AttemptOps, accountID string, scope domain.Scope, settings domain.ScopeSettings) (*Status, error) {
	now := s.now()
	since := now.Add(-settings.Window())
	bucket := scope.BucketKey()

	count, err := ops.CountAttemptsSince(ctx, accountID, bucket, since)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCountAttemptsFailed, err)
	}

	status := evaluate(count, settings)
	status.Bucket = bucket
	if status.Allowed {
		return status, nil
	}

	oldest, err := ops.OldestAttemptSince(ctx, accountID, bucket, since)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgOldestAttemptFailed, err)
	}
	if oldest != nil {
		status.SecondsUntilNextSlot = utils.CeilSeconds(oldest.Add(settings.Window()).Sub(now))
	}
	return status, nil
}

// record stamps the attempt at microsecond precision so RemoveAttempt can
// match it against the stored timestamp.
func (s *service) record(ctx context.Context, ops repository.AttemptOps, accountID string, scope domain.Scope) (domain.AttemptRecord, error) {
	record := domain.AttemptRecord{
		AccountID:   accountID,
		Bucket:      scope.BucketKey(),
		AttemptedAt: s.now().Truncate(time.Microsecond),
		Token:       uuid.NewString(),
	}
	if err := ops.InsertAttempt(ctx, record); err != nil {
		return record, fmt.Errorf(ErrMsgRecordAttemptFailed, err)
	}
	logger.FromContext(ctx).Debug(LogMsgAttemptRecorded, "bucket", record.Bucket)
	return record, nil
}

func evaluate(count int, settings domain.ScopeSettings) *Status {
	return &Status{
		Allowed:       count < settings.AttemptLimit,
		Remaining:     max(0, settings.AttemptLimit-count),
		Limit:         settings.AttemptLimit,
		WindowSeconds: settings.WindowSeconds,
	}
}

func limitedError(status *Status) error {
	return &domain.RateLimitedError{Scope: status.Bucket, RemainingSeconds: status.SecondsUntilNextSlot}
}
