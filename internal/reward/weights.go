package reward

import (
	"fmt"
	"math"

	"github.com/osse101/catchbot/internal/domain"
)

// ApplyRarityBoost shifts weight from Common to the rarer tiers. A boost of
// 0.2 removes 20% of Common's weight and spreads it over the tiers above
// Common in proportion to their base weights. The result is renormalized to
// sum to 100. Boosts above MaxRarityBoost are clamped; boosts at or below
// zero, and NaN, return a copy of base.
func ApplyRarityBoost(base domain.WeightTable, boost float64) domain.WeightTable {
	if boost <= 0 || math.IsNaN(boost) {
		return base.Clone()
	}
	if boost > domain.MaxRarityBoost {
		boost = domain.MaxRarityBoost
	}

	out := base.Clone()
	common := base[domain.TierCommon]
	reduction := common * boost

	var above float64
	for _, tier := range domain.Tiers {
		if tier != domain.TierCommon {
			above += base[tier]
		}
	}

	// Nothing above Common to receive the weight.
	if above <= 0 {
		return Normalize(out)
	}

	out[domain.TierCommon] = max(0, common-reduction)
	for _, tier := range domain.Tiers {
		if tier == domain.TierCommon {
			continue
		}
		out[tier] = base[tier] + reduction*(base[tier]/above)
	}
	return Normalize(out)
}

// Normalize scales every weight so the table sums to WeightTotal. A table
// with no positive weight is returned unchanged.
func Normalize(w domain.WeightTable) domain.WeightTable {
	out := w.Clone()
	total := out.Sum()
	if total <= 0 {
		return out
	}
	scale := domain.WeightTotal / total
	for _, tier := range domain.Tiers {
		out[tier] *= scale
	}
	return out
}

// ValidateWeights rejects negative or unknown entries and tables without weight
func ValidateWeights(w domain.WeightTable) error {
	for tier, weight := range w {
		if !tier.Valid() {
			return fmt.Errorf(ErrMsgUnknownTierKeyFmt, int(tier), domain.ErrInvalidInput)
		}
		if weight < 0 {
			return fmt.Errorf(ErrMsgInvalidWeightFmt, tier, domain.ErrInvalidInput)
		}
	}
	if total := w.Sum(); total <= 0 {
		return fmt.Errorf(ErrMsgWeightSumFmt, total, domain.ErrInvalidInput)
	}
	return nil
}
