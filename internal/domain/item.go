package domain

import "fmt"

// EffectKind names the variant of an item effect as stored.
type EffectKind string

const (
	EffectKindNone            EffectKind = ""
	EffectKindRarityBoost     EffectKind = "rarity_boost"
	EffectKindWorthMultiplier EffectKind = "worth_multiplier"
)

// Effect is the optional effect an item carries: None, RarityBoost(value) or
// WorthMultiplier(value). The zero value is None.
type Effect struct {
	kind  EffectKind
	value float64
}

// NoEffect returns the None variant.
func NoEffect() Effect { return Effect{} }

// RarityBoostEffect shifts catch weight away from the Common tier by value (a ratio).
func RarityBoostEffect(value float64) Effect {
	return Effect{kind: EffectKindRarityBoost, value: value}
}

// WorthMultiplierEffect scales the worth of caught rewards by value.
func WorthMultiplierEffect(value float64) Effect {
	return Effect{kind: EffectKindWorthMultiplier, value: value}
}

// NewEffect rebuilds an effect from its stored columns. A kind without a value,
// or a value without a kind, is rejected.
func NewEffect(kind EffectKind, value *float64) (Effect, error) {
	switch kind {
	case EffectKindNone:
		if value != nil {
			return Effect{}, fmt.Errorf("%w: effect value without kind", ErrInvalidInput)
		}
		return NoEffect(), nil
	case EffectKindRarityBoost, EffectKindWorthMultiplier:
		if value == nil {
			return Effect{}, fmt.Errorf("%w: effect %s without value", ErrInvalidInput, kind)
		}
		return Effect{kind: kind, value: *value}, nil
	default:
		return Effect{}, fmt.Errorf("%w: unknown effect kind %q", ErrInvalidInput, kind)
	}
}

// Kind returns the variant tag.
func (e Effect) Kind() EffectKind { return e.kind }

// IsNone reports whether the item has no effect.
func (e Effect) IsNone() bool { return e.kind == EffectKindNone }

// RarityBoost returns the boost ratio when the effect is a rarity boost.
func (e Effect) RarityBoost() (float64, bool) {
	if e.kind != EffectKindRarityBoost {
		return 0, false
	}
	return e.value, true
}

// WorthMultiplier returns the multiplier when the effect is a worth multiplier.
func (e Effect) WorthMultiplier() (float64, bool) {
	if e.kind != EffectKindWorthMultiplier {
		return 0, false
	}
	return e.value, true
}

// Columns splits the effect into its stored (kind, value) pair. None maps to ("", nil).
func (e Effect) Columns() (EffectKind, *float64) {
	if e.IsNone() {
		return EffectKindNone, nil
	}
	v := e.value
	return e.kind, &v
}

func (e Effect) String() string {
	if e.IsNone() {
		return "none"
	}
	return fmt.Sprintf("%s(%g)", e.kind, e.value)
}

// Item is an item definition. Passive effects apply while the item is held;
// consumable effects apply once and remove one unit on use.
type Item struct {
	ID           int    `json:"item_id"`
	Name         string `json:"name"`
	Slug         string `json:"slug,omitempty"` // empty when the item has no slug
	Description  string `json:"description,omitempty"`
	Effect       Effect `json:"-"`
	IsPassive    bool   `json:"is_passive"`
	IsConsumable bool   `json:"is_consumable"`
}

// EffectLabel is the human readable effect, used by API responses.
func (i Item) EffectLabel() string {
	return i.Effect.String()
}
