package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_BucketKey(t *testing.T) {
	assert.Equal(t, NoContextBucket, NoContextScope().BucketKey())
	assert.True(t, NoContextScope().IsNoContext())
	assert.Equal(t, "guild:42", GuildScope("42").BucketKey())
	assert.False(t, GuildScope("42").IsNoContext())
}

func TestTier_TextRoundTrip(t *testing.T) {
	data, err := json.Marshal(map[string]Tier{"tier": TierLegendary})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tier":"legendary"}`, string(data))

	var got struct {
		Tier Tier `json:"tier"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"tier":"Rare"}`), &got))
	assert.Equal(t, TierRare, got.Tier)

	err = json.Unmarshal([]byte(`{"tier":"mythic"}`), &got)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "tier(9)", Tier(9).String())
}

func TestDefaultWeights_SumToTotal(t *testing.T) {
	assert.InDelta(t, WeightTotal, DefaultWeights().Sum(), 1e-9)

	w := DefaultWeights()
	clone := w.Clone()
	clone[TierCommon] = 0
	assert.InDelta(t, 60.0, w[TierCommon], 1e-9, "clone is independent")
}

func TestNewEffect(t *testing.T) {
	v := 0.25
	tests := []struct {
		name    string
		kind    EffectKind
		value   *float64
		want    Effect
		wantErr bool
	}{
		{"none", EffectKindNone, nil, NoEffect(), false},
		{"rarity boost", EffectKindRarityBoost, &v, RarityBoostEffect(0.25), false},
		{"multiplier", EffectKindWorthMultiplier, &v, WorthMultiplierEffect(0.25), false},
		{"value without kind", EffectKindNone, &v, Effect{}, true},
		{"kind without value", EffectKindRarityBoost, nil, Effect{}, true},
		{"unknown kind", EffectKind("curse"), &v, Effect{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEffect(tt.kind, tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			kind, value := got.Columns()
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.value == nil, value == nil)
		})
	}
}

func TestTypedErrors(t *testing.T) {
	funds := fmt.Errorf("purchase: %w", &InsufficientFundsError{Balance: 5, Required: 10})
	assert.ErrorIs(t, funds, ErrInsufficientFunds)
	var fe *InsufficientFundsError
	require.ErrorAs(t, funds, &fe)
	assert.Equal(t, int64(10), fe.Required)

	limited := &RateLimitedError{Scope: "dm", RemainingSeconds: 90}
	assert.ErrorIs(t, limited, ErrRateLimited)
	assert.Contains(t, limited.Error(), "1m 30s")
	assert.Contains(t, (&RateLimitedError{Scope: "dm", RemainingSeconds: 7}).Error(), "7s")

	assert.ErrorIs(t, &EmptyRewardPoolError{Tier: TierRare}, ErrEmptyRewardPool)
	assert.ErrorIs(t, ErrAccountNotFound, ErrNotFound)
}

func TestInfrastructure(t *testing.T) {
	assert.NoError(t, Infrastructure("op", nil))

	business := fmt.Errorf("%w: 3", ErrItemNotFound)
	assert.Same(t, business, Infrastructure("op", business), "business errors pass through")

	boom := errors.New("connection reset")
	wrapped := Infrastructure("get account", boom)
	assert.ErrorIs(t, wrapped, ErrInfrastructure)
	assert.ErrorIs(t, wrapped, boom)
	assert.False(t, IsBusinessError(wrapped))
	assert.Same(t, wrapped, Infrastructure("again", wrapped))
}
