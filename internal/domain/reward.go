package domain

import (
	"fmt"
	"strings"
	"time"
)

// Tier is a rarity classification. Higher values are rarer.
type Tier int

const (
	TierCommon Tier = iota
	TierUncommon
	TierRare
	TierLegendary
)

// Tiers lists every tier from most to least common.
var Tiers = []Tier{TierCommon, TierUncommon, TierRare, TierLegendary}

var tierNames = map[Tier]string{
	TierCommon:    "common",
	TierUncommon:  "uncommon",
	TierRare:      "rare",
	TierLegendary: "legendary",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	_, ok := tierNames[t]
	return ok
}

// ParseTier accepts a tier name, case-insensitively.
func ParseTier(name string) (Tier, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for tier, n := range tierNames {
		if n == lower {
			return tier, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown tier %q", ErrInvalidInput, name)
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier name.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// WeightTable maps each tier to its weight. Tables used for draws sum to 100.
type WeightTable map[Tier]float64

// DefaultWeights is the base table used when no configuration overrides it.
func DefaultWeights() WeightTable {
	return WeightTable{
		TierCommon:    60,
		TierUncommon:  30,
		TierRare:      8,
		TierLegendary: 2,
	}
}

// Clone returns an independent copy.
func (w WeightTable) Clone() WeightTable {
	out := make(WeightTable, len(w))
	for tier, weight := range w {
		out[tier] = weight
	}
	return out
}

// Sum totals every weight in the table.
func (w WeightTable) Sum() float64 {
	var total float64
	for _, tier := range Tiers {
		total += w[tier]
	}
	return total
}

// Reward is a catchable definition. FirstClaimedBy is set once, globally.
type Reward struct {
	ID             int        `json:"reward_id"`
	Name           string     `json:"name"`
	Worth          int64      `json:"worth"`
	Tier           Tier       `json:"tier"`
	FirstClaimedBy *string    `json:"first_claimed_by,omitempty"`
	FirstClaimedAt *time.Time `json:"first_claimed_at,omitempty"`
}

// CatchRecord is the append-only history row of a completed catch.
type CatchRecord struct {
	ID         int64     `json:"catch_id"`
	AccountID  string    `json:"account_id"`
	RewardID   int       `json:"reward_id"`
	Tier       Tier      `json:"tier"`
	Worth      int64     `json:"worth"`
	FirstClaim bool      `json:"first_claim"`
	Bucket     string    `json:"bucket"`
	CaughtAt   time.Time `json:"caught_at"`
}
