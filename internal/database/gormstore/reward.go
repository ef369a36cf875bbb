package gormstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/repository"
)

// CatchRepository implements repository.Catch using GORM
type CatchRepository struct {
	store
}

// BeginTx starts a new transaction
func (r *CatchRepository) BeginTx(ctx context.Context) (repository.CatchTx, error) {
	return r.begin(ctx)
}

// GetRewardsByTier lists the reward pool of one tier
func (q queries) GetRewardsByTier(ctx context.Context, tier domain.Tier) ([]domain.Reward, error) {
	var rows []Reward
	if err := q.with(ctx).Where("tier = ?", int16(tier)).Order("reward_id").Find(&rows).Error; err != nil {
		return nil, wrapErr(opGetRewards, err)
	}

	rewards := make([]domain.Reward, len(rows))
	for i, row := range rows {
		rewards[i] = domain.Reward{
			ID:             row.RewardID,
			Name:           row.RewardName,
			Worth:          row.Worth,
			Tier:           domain.Tier(row.Tier),
			FirstClaimedBy: row.FirstClaimedBy,
			FirstClaimedAt: row.FirstClaimedAt,
		}
	}
	return rewards, nil
}

// ClaimFirst sets the first claimer only while none is recorded
func (q queries) ClaimFirst(ctx context.Context, rewardID int, accountID string, at time.Time) (bool, error) {
	result := q.with(ctx).
		Model(&Reward{}).
		Where("reward_id = ? AND first_claimed_by IS NULL", rewardID).
		Updates(map[string]any{
			"first_claimed_by": accountID,
			"first_claimed_at": at.UTC(),
		})
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return false, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
		}
		return false, wrapErr(opClaimFirst, result.Error)
	}
	if result.RowsAffected == 1 {
		return true, nil
	}

	var n int64
	if err := q.with(ctx).Model(&Reward{}).Where("reward_id = ?", rewardID).Count(&n).Error; err != nil {
		return false, wrapErr(opClaimFirst, err)
	}
	if n == 0 {
		return false, fmt.Errorf("%w: %d", domain.ErrRewardNotFound, rewardID)
	}
	return false, nil
}

// InsertCatchRecord appends a catch history row and sets its id
func (q queries) InsertCatchRecord(ctx context.Context, record *domain.CatchRecord) error {
	row := CatchRecord{
		AccountID:  record.AccountID,
		RewardID:   record.RewardID,
		Tier:       int16(record.Tier),
		Worth:      record.Worth,
		FirstClaim: record.FirstClaim,
		Bucket:     record.Bucket,
		CaughtAt:   record.CaughtAt.UTC(),
	}
	if err := q.with(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return wrapErr(opInsertCatch, err)
	}
	record.ID = row.CatchID
	return nil
}

// GetCatchHistory returns the newest catches first
func (q queries) GetCatchHistory(ctx context.Context, accountID string, limit int) ([]domain.CatchRecord, error) {
	var rows []CatchRecord
	err := q.with(ctx).
		Where("account_id = ?", accountID).
		Order("caught_at DESC, catch_id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, wrapErr(opGetCatches, err)
	}

	records := make([]domain.CatchRecord, len(rows))
	for i, row := range rows {
		records[i] = domain.CatchRecord{
			ID:         row.CatchID,
			AccountID:  row.AccountID,
			RewardID:   row.RewardID,
			Tier:       domain.Tier(row.Tier),
			Worth:      row.Worth,
			FirstClaim: row.FirstClaim,
			Bucket:     row.Bucket,
			CaughtAt:   row.CaughtAt,
		}
	}
	return records, nil
}
