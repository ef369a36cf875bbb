package domain

import "time"

// Bucket key constants
const (
	// NoContextBucket is the bucket shared by every attempt made outside a guild
	// (direct messages). It never collides with a guild bucket.
	NoContextBucket = "dm"

	// GuildBucketPrefix prefixes per-guild bucket keys.
	GuildBucketPrefix = "guild:"
)

// Scope default constants
const (
	DefaultAttemptLimit  = 10
	DefaultWindowSeconds = 3600
)

// Scope identifies the context an attempt is made in. An empty GuildID is the
// no-context scope.
type Scope struct {
	GuildID string `json:"guild_id,omitempty"`
}

// NoContextScope is the direct-message scope.
func NoContextScope() Scope { return Scope{} }

// GuildScope returns the scope of a community context.
func GuildScope(guildID string) Scope { return Scope{GuildID: guildID} }

// IsNoContext reports whether the scope is the shared no-context bucket.
func (s Scope) IsNoContext() bool { return s.GuildID == "" }

// BucketKey is the rate-limit bucket the scope counts attempts in.
func (s Scope) BucketKey() string {
	if s.IsNoContext() {
		return NoContextBucket
	}
	return GuildBucketPrefix + s.GuildID
}

func (s Scope) String() string { return s.BucketKey() }

// ScopeSettings is the rate-limit configuration of one scope.
type ScopeSettings struct {
	ScopeKey      string `json:"scope_key"`
	AttemptLimit  int    `json:"attempt_limit"`
	WindowSeconds int    `json:"window_seconds"`
}

// Window returns the window length as a duration.
func (s ScopeSettings) Window() time.Duration {
	return time.Duration(s.WindowSeconds) * time.Second
}

// AttemptRecord is one rate-limited attempt. Token identifies it in stores
// that key attempts by member rather than by row.
type AttemptRecord struct {
	AccountID   string    `json:"account_id"`
	Bucket      string    `json:"bucket"`
	AttemptedAt time.Time `json:"attempted_at"`
	Token       string    `json:"-"`
}
