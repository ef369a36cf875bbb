package effects

import (
	"context"
	"fmt"

	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/repository"
)

// Service resolves how held items modify catches
type Service interface {
	GetPassiveBoosts(ctx context.Context, accountID string) (PassiveBoosts, error)
	GetBestConsumableRarityBoost(ctx context.Context, accountID string) (*ConsumableBoost, error)
	Consume(ctx context.Context, accountID string, itemID int) (int, error)
}

type service struct {
	repo repository.Effects
}

// NewService creates a new effects service
func NewService(repo repository.Effects) Service {
	return &service{repo: repo}
}

func (s *service) GetPassiveBoosts(ctx context.Context, accountID string) (PassiveBoosts, error) {
	return GetPassiveBoostsWith(logger.WithAccount(ctx, accountID), s.repo, accountID)
}

func (s *service) GetBestConsumableRarityBoost(ctx context.Context, accountID string) (*ConsumableBoost, error) {
	return GetBestConsumableRarityBoostWith(logger.WithAccount(ctx, accountID), s.repo, accountID)
}

// Consume removes one unit of a consumable. Unknown accounts and items are
// NotFound, non-consumables NotConsumable, and an item not held
// InsufficientInventory.
func (s *service) Consume(ctx context.Context, accountID string, itemID int) (int, error) {
	ctx = logger.WithAccount(ctx, accountID)
	logger.FromContext(ctx).Info(LogMsgConsumeCalled, "item_id", itemID)

	if _, err := s.repo.GetAccount(ctx, accountID); err != nil {
		return 0, fmt.Errorf(ErrMsgGetAccountFailed, err)
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetItemFailed, err)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	remaining, err := ConsumeWith(ctx, tx, accountID, *item)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgConsumeFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf(ErrMsgCommitFailed, err)
	}
	return remaining, nil
}
