package effects

import (
	"context"
	"fmt"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/ledger"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/repository"
)

// PassiveBoosts aggregates the effects of every passive item held
type PassiveBoosts struct {
	RarityBoostSum         float64 `json:"rarity_boost_sum"`
	WorthMultiplierProduct float64 `json:"worth_multiplier_product"`
}

// NoBoosts is the identity aggregate
func NoBoosts() PassiveBoosts {
	return PassiveBoosts{RarityBoostSum: NoRarityBoost, WorthMultiplierProduct: NeutralWorthFactor}
}

// ConsumableBoost is the strongest consumable rarity boost an account holds
type ConsumableBoost struct {
	Item      domain.Item `json:"item"`
	HeldCount int         `json:"held_count"`
	Value     float64     `json:"value"`
}

// SumPassiveBoosts folds the passive items of an inventory. Each definition
// contributes once no matter how many units are held.
func SumPassiveBoosts(entries []domain.InventoryEntry) PassiveBoosts {
	boosts := NoBoosts()
	for _, entry := range entries {
		if entry.Count <= 0 || !entry.Item.IsPassive {
			continue
		}
		if v, ok := entry.Item.Effect.RarityBoost(); ok {
			boosts.RarityBoostSum += v
		}
		if v, ok := entry.Item.Effect.WorthMultiplier(); ok {
			boosts.WorthMultiplierProduct *= v
		}
	}
	return boosts
}

// BestConsumable picks the largest rarity boost among held, non-passive
// consumables. Ties go to the lowest item id. It returns nil when none is held.
func BestConsumable(entries []domain.InventoryEntry) *ConsumableBoost {
	var best *ConsumableBoost
	for _, entry := range entries {
		item := entry.Item
		if entry.Count <= 0 || !item.IsConsumable || item.IsPassive {
			continue
		}
		v, ok := item.Effect.RarityBoost()
		if !ok {
			continue
		}
		if best == nil || v > best.Value || (v == best.Value && item.ID < best.Item.ID) {
			best = &ConsumableBoost{Item: item, HeldCount: entry.Count, Value: v}
		}
	}
	return best
}

// GetPassiveBoostsWith reads the inventory through r, which may be a transaction
func GetPassiveBoostsWith(ctx context.Context, r repository.InventoryReader, accountID string) (PassiveBoosts, error) {
	entries, err := r.GetInventory(ctx, accountID)
	if err != nil {
		return NoBoosts(), fmt.Errorf(ErrMsgGetInventoryFailed, err)
	}
	boosts := SumPassiveBoosts(entries)
	logger.FromContext(ctx).Debug(LogMsgPassiveBoosts,
		"rarity_boost", boosts.RarityBoostSum, "worth_multiplier", boosts.WorthMultiplierProduct)
	return boosts, nil
}

// GetBestConsumableRarityBoostWith reads the inventory through r, which may be a transaction
func GetBestConsumableRarityBoostWith(ctx context.Context, r repository.InventoryReader, accountID string) (*ConsumableBoost, error) {
	entries, err := r.GetInventory(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetInventoryFailed, err)
	}
	best := BestConsumable(entries)
	if best == nil {
		logger.FromContext(ctx).Debug(LogMsgNoConsumableHit)
		return nil, nil
	}
	logger.FromContext(ctx).Debug(LogMsgBestConsumable, "item_id", best.Item.ID, "value", best.Value)
	return best, nil
}

// ConsumeWith removes exactly one unit of a consumable item through ops and
// returns the remaining count.
func ConsumeWith(ctx context.Context, ops repository.LedgerOps, accountID string, item domain.Item) (int, error) {
	if !item.IsConsumable {
		return 0, fmt.Errorf(ErrMsgNotConsumableFmt, item.Name, domain.ErrNotConsumable)
	}
	remaining, err := ledger.UpsertInventory(ctx, ops, accountID, item.ID, -ConsumeQuantityUnit)
	if err != nil {
		return 0, err
	}
	logger.FromContext(ctx).Info(LogMsgItemConsumed, "item", item.Name, "remaining", remaining)
	return remaining, nil
}
