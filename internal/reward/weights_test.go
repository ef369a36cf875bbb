package reward

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/catchbot/internal/domain"
)

const epsilon = 1e-9

func TestApplyRarityBoost_NoBoostReturnsCopy(t *testing.T) {
	base := domain.DefaultWeights()

	for _, boost := range []float64{0, -0.3, math.NaN()} {
		got := ApplyRarityBoost(base, boost)
		assert.Equal(t, base, got)

		got[domain.TierCommon] = 1
		assert.Equal(t, 60.0, base[domain.TierCommon], "result must not alias base")
	}
}

func TestApplyRarityBoost_ShiftsCommonProportionally(t *testing.T) {
	got := ApplyRarityBoost(domain.DefaultWeights(), 0.2)

	// Common loses 12; the 40 above Common split it 30:8:2.
	assert.InDelta(t, 48.0, got[domain.TierCommon], epsilon)
	assert.InDelta(t, 39.0, got[domain.TierUncommon], epsilon)
	assert.InDelta(t, 10.4, got[domain.TierRare], epsilon)
	assert.InDelta(t, 2.6, got[domain.TierLegendary], epsilon)
	assert.InDelta(t, domain.WeightTotal, got.Sum(), epsilon)
}

func TestApplyRarityBoost_Clamped(t *testing.T) {
	clamped := ApplyRarityBoost(domain.DefaultWeights(), 3)
	atMax := ApplyRarityBoost(domain.DefaultWeights(), domain.MaxRarityBoost)

	for _, tier := range domain.Tiers {
		assert.InDelta(t, atMax[tier], clamped[tier], epsilon)
	}
	assert.InDelta(t, 30.0, clamped[domain.TierCommon], epsilon)
}

func TestApplyRarityBoost_Properties(t *testing.T) {
	base := domain.DefaultWeights()
	prevCommon := base[domain.TierCommon]

	for boost := 0.0; boost <= domain.MaxRarityBoost+epsilon; boost += 0.01 {
		got := ApplyRarityBoost(base, boost)

		assert.InDelta(t, domain.WeightTotal, got.Sum(), 1e-6, "boost %.2f", boost)
		assert.LessOrEqual(t, got[domain.TierCommon], prevCommon+epsilon, "Common never grows, boost %.2f", boost)
		for _, tier := range domain.Tiers {
			assert.GreaterOrEqual(t, got[tier], 0.0)
			if tier != domain.TierCommon {
				assert.GreaterOrEqual(t, got[tier], base[tier]-epsilon, "rarer tiers never shrink")
			}
		}
		prevCommon = got[domain.TierCommon]
	}
}

func TestApplyRarityBoost_UnnormalizedBase(t *testing.T) {
	base := domain.WeightTable{
		domain.TierCommon:    6,
		domain.TierUncommon:  3,
		domain.TierRare:      0.8,
		domain.TierLegendary: 0.2,
	}

	got := ApplyRarityBoost(base, 0.2)

	assert.InDelta(t, 48.0, got[domain.TierCommon], epsilon)
	assert.InDelta(t, domain.WeightTotal, got.Sum(), epsilon)
}

func TestApplyRarityBoost_OnlyCommon(t *testing.T) {
	got := ApplyRarityBoost(domain.WeightTable{domain.TierCommon: 10}, 0.5)

	assert.InDelta(t, domain.WeightTotal, got[domain.TierCommon], epsilon)
}

func TestValidateWeights(t *testing.T) {
	require.NoError(t, ValidateWeights(domain.DefaultWeights()))

	assert.ErrorIs(t, ValidateWeights(domain.WeightTable{domain.TierCommon: -1, domain.TierRare: 5}), domain.ErrInvalidInput)
	assert.ErrorIs(t, ValidateWeights(domain.WeightTable{}), domain.ErrInvalidInput)
	assert.ErrorIs(t, ValidateWeights(domain.WeightTable{domain.Tier(9): 1}), domain.ErrInvalidInput)
}
