package gormstore

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/osse101/catchbot/internal/domain"
)

// CatalogRepository implements repository.Catalog using GORM
type CatalogRepository struct {
	store
}

// UpsertItem inserts or updates an item by name
func (q queries) UpsertItem(ctx context.Context, item domain.Item) (int, error) {
	m := fromDomainItem(item)
	m.ItemID = 0
	err := q.with(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"slug", "description", "effect_kind", "effect_value", "is_passive", "is_consumable"}),
		}).
		Create(&m).Error
	if err != nil {
		return 0, wrapErr(opUpsertItem, err)
	}

	var row Item
	if err := q.with(ctx).Select("item_id").Where("item_name = ?", item.Name).Take(&row).Error; err != nil {
		return 0, wrapErr(opUpsertItem, err)
	}
	return row.ItemID, nil
}

// UpsertListing inserts or updates the listing of an item
func (q queries) UpsertListing(ctx context.Context, itemID int, cost int64) (int, error) {
	err := q.with(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"cost"}),
		}).
		Create(&ShopListing{ItemID: itemID, Cost: cost}).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, domain.ErrItemNotFound
		}
		return 0, wrapErr(opUpsertListing, err)
	}

	var row ShopListing
	if err := q.with(ctx).Select("listing_id").Where("item_id = ?", itemID).Take(&row).Error; err != nil {
		return 0, wrapErr(opUpsertListing, err)
	}
	return row.ListingID, nil
}

// UpsertReward inserts or updates a reward by name, keeping its first claim
func (q queries) UpsertReward(ctx context.Context, reward domain.Reward) (int, error) {
	err := q.with(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "reward_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"worth", "tier"}),
		}).
		Create(&Reward{RewardName: reward.Name, Worth: reward.Worth, Tier: int16(reward.Tier)}).Error
	if err != nil {
		return 0, wrapErr(opUpsertReward, err)
	}

	var row Reward
	if err := q.with(ctx).Select("reward_id").Where("reward_name = ?", reward.Name).Take(&row).Error; err != nil {
		return 0, wrapErr(opUpsertReward, err)
	}
	return row.RewardID, nil
}
