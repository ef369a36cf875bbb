package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/repository"
)

// CatchRepository implements repository.Catch for PostgreSQL
type CatchRepository struct {
	store
}

// NewCatchRepository creates a new CatchRepository
func NewCatchRepository(pool *pgxpool.Pool) *CatchRepository {
	return &CatchRepository{store: newStore(pool)}
}

// BeginTx starts a new transaction
func (r *CatchRepository) BeginTx(ctx context.Context) (repository.CatchTx, error) {
	return r.begin(ctx)
}

// GetRewardsByTier lists the reward pool of one tier
func (q queries) GetRewardsByTier(ctx context.Context, tier domain.Tier) ([]domain.Reward, error) {
	rows, err := q.db.Query(ctx, SQLGetRewardsByTier, int(tier))
	if err != nil {
		return nil, wrapErr(opGetRewards, err)
	}
	defer rows.Close()

	var rewards []domain.Reward
	for rows.Next() {
		var r domain.Reward
		var t int16
		if err := rows.Scan(&r.ID, &r.Name, &r.Worth, &t, &r.FirstClaimedBy, &r.FirstClaimedAt); err != nil {
			return nil, wrapErr(opGetRewards, err)
		}
		r.Tier = domain.Tier(t)
		rewards = append(rewards, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(opGetRewards, err)
	}
	return rewards, nil
}

// ClaimFirst sets the first claimer only while none is recorded
func (q queries) ClaimFirst(ctx context.Context, rewardID int, accountID string, at time.Time) (bool, error) {
	tag, err := q.db.Exec(ctx, SQLClaimFirst, rewardID, accountID, at)
	if err != nil {
		return false, wrapErr(opClaimFirst, err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	var exists bool
	if err := q.db.QueryRow(ctx, SQLRewardExists, rewardID).Scan(&exists); err != nil {
		return false, wrapErr(opClaimFirst, err)
	}
	if !exists {
		return false, fmt.Errorf("%w: %d", domain.ErrRewardNotFound, rewardID)
	}
	return false, nil
}

// InsertCatchRecord appends a catch history row and sets its id
func (q queries) InsertCatchRecord(ctx context.Context, record *domain.CatchRecord) error {
	err := q.db.QueryRow(ctx, SQLInsertCatchRecord,
		record.AccountID, record.RewardID, int(record.Tier), record.Worth,
		record.FirstClaim, record.Bucket, record.CaughtAt,
	).Scan(&record.ID)
	return wrapErr(opInsertCatch, err)
}

// GetCatchHistory returns the newest catches first
func (q queries) GetCatchHistory(ctx context.Context, accountID string, limit int) ([]domain.CatchRecord, error) {
	rows, err := q.db.Query(ctx, SQLGetCatchHistory, accountID, limit)
	if err != nil {
		return nil, wrapErr(opGetCatches, err)
	}
	defer rows.Close()

	var records []domain.CatchRecord
	for rows.Next() {
		var rec domain.CatchRecord
		var t int16
		if err := rows.Scan(&rec.ID, &rec.AccountID, &rec.RewardID, &t, &rec.Worth, &rec.FirstClaim, &rec.Bucket, &rec.CaughtAt); err != nil {
			return nil, wrapErr(opGetCatches, err)
		}
		rec.Tier = domain.Tier(t)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(opGetCatches, err)
	}
	return records, nil
}
