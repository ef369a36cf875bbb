package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Lookup errors
	ErrMsgNotFound        = "not found"
	ErrMsgAccountNotFound = "account"
	ErrMsgListingNotFound = "listing"
	ErrMsgItemNotFound    = "item"
	ErrMsgRewardNotFound  = "reward"

	// Economy errors
	ErrMsgInsufficientFunds     = "insufficient funds"
	ErrMsgInsufficientInventory = "insufficient inventory"
	ErrMsgInvalidQuantity       = "invalid quantity"
	ErrMsgNotConsumable         = "item is not consumable"

	// Catch errors
	ErrMsgRateLimited     = "rate limited"
	ErrMsgEmptyRewardPool = "reward pool is empty"

	// Database/System errors
	ErrMsgInfrastructure = "infrastructure failure"
	ErrMsgTxClosed       = "tx is closed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotFound = errors.New(ErrMsgNotFound)

	ErrAccountNotFound = fmt.Errorf("%s %w", ErrMsgAccountNotFound, ErrNotFound)
	ErrListingNotFound = fmt.Errorf("%s %w", ErrMsgListingNotFound, ErrNotFound)
	ErrItemNotFound    = fmt.Errorf("%s %w", ErrMsgItemNotFound, ErrNotFound)
	ErrRewardNotFound  = fmt.Errorf("%s %w", ErrMsgRewardNotFound, ErrNotFound)

	ErrInsufficientFunds     = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientInventory = errors.New(ErrMsgInsufficientInventory)
	ErrInvalidQuantity       = errors.New(ErrMsgInvalidQuantity)
	ErrNotConsumable         = errors.New(ErrMsgNotConsumable)

	ErrRateLimited     = errors.New(ErrMsgRateLimited)
	ErrEmptyRewardPool = errors.New(ErrMsgEmptyRewardPool)

	ErrInfrastructure = errors.New(ErrMsgInfrastructure)

	// ErrTxClosed is returned by repository transactions when Rollback runs
	// after Commit. SafeRollback ignores it.
	ErrTxClosed = errors.New(ErrMsgTxClosed)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// InsufficientFundsError carries the balance observed when a debit lost.
type InsufficientFundsError struct {
	Balance  int64
	Required int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: balance %d, required %d", ErrMsgInsufficientFunds, e.Balance, e.Required)
}

// Is allows errors.Is(err, ErrInsufficientFunds) to match.
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// RateLimitedError is returned when a scope bucket has no free slot.
type RateLimitedError struct {
	Scope            string
	RemainingSeconds int64
}

func (e *RateLimitedError) Error() string {
	minutes := e.RemainingSeconds / 60
	seconds := e.RemainingSeconds % 60
	if minutes > 0 {
		return fmt.Sprintf("%s in '%s': %dm %ds remaining", ErrMsgRateLimited, e.Scope, minutes, seconds)
	}
	return fmt.Sprintf("%s in '%s': %ds remaining", ErrMsgRateLimited, e.Scope, seconds)
}

// Is allows errors.Is(err, ErrRateLimited) to match.
func (e *RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}

// EmptyRewardPoolError reports a content gap: a tier was drawn that has no rewards.
type EmptyRewardPoolError struct {
	Tier Tier
}

func (e *EmptyRewardPoolError) Error() string {
	return fmt.Sprintf("%s for tier %s", ErrMsgEmptyRewardPool, e.Tier)
}

// Is allows errors.Is(err, ErrEmptyRewardPool) to match.
func (e *EmptyRewardPoolError) Is(target error) bool {
	return target == ErrEmptyRewardPool
}

// InfrastructureError wraps a storage or connectivity failure that is unrelated
// to business rules.
type InfrastructureError struct {
	Op  string
	Err error
}

// Infrastructure wraps err as an InfrastructureError. A nil err stays nil and
// an error that already is infrastructure or a business error is returned as is.
func Infrastructure(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsBusinessError(err) || errors.Is(err, ErrInfrastructure) {
		return err
	}
	return &InfrastructureError{Op: op, Err: err}
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrMsgInfrastructure, e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error {
	return e.Err
}

// Is allows errors.Is(err, ErrInfrastructure) to match.
func (e *InfrastructureError) Is(target error) bool {
	return target == ErrInfrastructure
}

// IsBusinessError reports whether err is one of the typed business outcomes,
// which callers must not retry.
func IsBusinessError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrInsufficientInventory),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, ErrNotConsumable),
		errors.Is(err, ErrRateLimited),
		errors.Is(err, ErrEmptyRewardPool),
		errors.Is(err, ErrInvalidInput):
		return true
	}
	return false
}
