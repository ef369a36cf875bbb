package ratelimit

import (
	"context"
	"fmt"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/repository"
)

// SettingsResolver returns the rate-limit settings of a scope. Guild scopes
// get a row with the defaults the first time they are seen; the no-context
// scope always uses the defaults and is never stored.
type SettingsResolver struct {
	repo     repository.ScopeSettings
	defaults Limits
}

// Limits is an attempt limit over a window
type Limits struct {
	AttemptLimit  int
	WindowSeconds int
}

// DefaultLimits returns 10 attempts per hour
func DefaultLimits() Limits {
	return Limits{AttemptLimit: domain.DefaultAttemptLimit, WindowSeconds: domain.DefaultWindowSeconds}
}

// NewSettingsResolver creates a resolver. Non-positive defaults fall back to DefaultLimits.
func NewSettingsResolver(repo repository.ScopeSettings, defaults Limits) *SettingsResolver {
	if defaults.AttemptLimit < 1 {
		defaults.AttemptLimit = domain.DefaultAttemptLimit
	}
	if defaults.WindowSeconds < 1 {
		defaults.WindowSeconds = domain.DefaultWindowSeconds
	}
	return &SettingsResolver{repo: repo, defaults: defaults}
}

func (r *SettingsResolver) defaultsFor(scope domain.Scope) domain.ScopeSettings {
	return domain.ScopeSettings{
		ScopeKey:      scope.BucketKey(),
		AttemptLimit:  r.defaults.AttemptLimit,
		WindowSeconds: r.defaults.WindowSeconds,
	}
}

// Resolve returns the settings in force for scope
func (r *SettingsResolver) Resolve(ctx context.Context, scope domain.Scope) (domain.ScopeSettings, error) {
	defaults := r.defaultsFor(scope)
	if scope.IsNoContext() {
		return defaults, nil
	}

	settings, err := r.repo.EnsureScopeSettings(ctx, defaults)
	if err != nil {
		return domain.ScopeSettings{}, fmt.Errorf(ErrMsgResolveSettingsFailed, err)
	}
	return *settings, nil
}

// Update overwrites the settings of a guild scope
func (r *SettingsResolver) Update(ctx context.Context, scope domain.Scope, limit, windowSeconds int) (domain.ScopeSettings, error) {
	if scope.IsNoContext() {
		return domain.ScopeSettings{}, fmt.Errorf(ErrMsgNoContextSettingsFixed, domain.ErrInvalidInput)
	}
	if limit < 1 {
		return domain.ScopeSettings{}, fmt.Errorf(ErrMsgInvalidLimitFmt, limit, domain.ErrInvalidInput)
	}
	if windowSeconds < 1 {
		return domain.ScopeSettings{}, fmt.Errorf(ErrMsgInvalidWindowFmt, windowSeconds, domain.ErrInvalidInput)
	}

	settings := domain.ScopeSettings{ScopeKey: scope.BucketKey(), AttemptLimit: limit, WindowSeconds: windowSeconds}
	if err := r.repo.UpsertScopeSettings(ctx, settings); err != nil {
		return domain.ScopeSettings{}, fmt.Errorf(ErrMsgUpdateSettingsFailed, err)
	}
	return settings, nil
}
