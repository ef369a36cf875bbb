package repository

import (
	"context"
	"time"

	"github.com/osse101/catchbot/internal/domain"
)

// RewardOps reads the reward pool and settles first claims
type RewardOps interface {
	GetRewardsByTier(ctx context.Context, tier domain.Tier) ([]domain.Reward, error)

	// ClaimFirst sets first_claimed_by only where it is still null.
	// claimed is true for exactly one caller per reward.
	ClaimFirst(ctx context.Context, rewardID int, accountID string, at time.Time) (claimed bool, err error)
}

// Catch defines the interface for catch persistence
type Catch interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetCatchHistory(ctx context.Context, accountID string, limit int) ([]domain.CatchRecord, error)
	BeginTx(ctx context.Context) (CatchTx, error)
}

// CatchTx is one catch attempt: the counted attempt, effects, draw and
// settlement commit together
type CatchTx interface {
	LedgerTx
	InventoryReader
	RewardOps
	AttemptTx
	InsertCatchRecord(ctx context.Context, record *domain.CatchRecord) error
}
