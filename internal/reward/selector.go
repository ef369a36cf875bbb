package reward

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/repository"
	"github.com/osse101/catchbot/internal/utils"
)

// drawOrder walks tiers rarest first so rare tiers own the low end of the roll
var drawOrder = []domain.Tier{
	domain.TierLegendary,
	domain.TierRare,
	domain.TierUncommon,
	domain.TierCommon,
}

// TierForRoll maps a roll in [0, WeightTotal) to a tier. Float drift past
// the last boundary falls back to Common.
func TierForRoll(weights domain.WeightTable, roll float64) domain.Tier {
	var cumulative float64
	for _, tier := range drawOrder {
		cumulative += weights[tier]
		if cumulative > roll {
			return tier
		}
	}
	return domain.TierCommon
}

// Selector draws tiers and rewards from an injected random source
type Selector struct {
	base domain.WeightTable
	rnd  func() float64
}

// NewSelector creates a selector over base weights. A nil rnd uses utils.RandomFloat.
func NewSelector(base domain.WeightTable, rnd func() float64) *Selector {
	if base == nil {
		base = domain.DefaultWeights()
	}
	if rnd == nil {
		rnd = utils.RandomFloat
	}
	return &Selector{base: Normalize(base), rnd: rnd}
}

// BaseWeights returns a copy of the unboosted table
func (s *Selector) BaseWeights() domain.WeightTable {
	return s.base.Clone()
}

// Weights returns the base table with boost applied
func (s *Selector) Weights(boost float64) domain.WeightTable {
	return ApplyRarityBoost(s.base, boost)
}

// SelectTier draws one tier from weights
func (s *Selector) SelectTier(ctx context.Context, weights domain.WeightTable) domain.Tier {
	roll := s.rnd() * domain.WeightTotal
	tier := TierForRoll(weights, roll)
	logger.FromContext(ctx).Debug(LogMsgTierDrawn, "roll", roll, "tier", tier.String())
	return tier
}

// PickRewardInTier picks uniformly among every reward of the tier
func (s *Selector) PickRewardInTier(ctx context.Context, ops repository.RewardOps, tier domain.Tier) (*domain.Reward, error) {
	rewards, err := ops.GetRewardsByTier(ctx, tier)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRewardsFailed, tier, err)
	}
	if len(rewards) == 0 {
		return nil, &domain.EmptyRewardPoolError{Tier: tier}
	}

	idx := int(s.rnd() * float64(len(rewards)))
	if idx >= len(rewards) {
		idx = len(rewards) - 1
	}
	picked := rewards[idx]
	logger.FromContext(ctx).Debug(LogMsgRewardPicked, "tier", tier.String(), "reward", picked.Name, "pool_size", len(rewards))
	return &picked, nil
}

// RecordFirstClaim marks accountID as the first catcher of the reward.
// Only the caller that wins the conditional update gets true.
func RecordFirstClaim(ctx context.Context, ops repository.RewardOps, rewardID int, accountID string, at time.Time) (bool, error) {
	claimed, err := ops.ClaimFirst(ctx, rewardID, accountID, at)
	if err != nil {
		return false, fmt.Errorf(ErrMsgClaimFirstFailed, err)
	}

	log := logger.FromContext(ctx)
	if claimed {
		log.Info(LogMsgFirstClaimRecorded, "reward_id", rewardID, "account_id", accountID)
	} else {
		log.Debug(LogMsgFirstClaimLost, "reward_id", rewardID, "account_id", accountID)
	}
	return claimed, nil
}
