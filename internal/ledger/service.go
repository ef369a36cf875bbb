package ledger

import (
	"context"
	"fmt"

	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/repository"
)

// Service exposes the ledger operations as standalone calls. Each call runs
// in its own transaction; orchestrators that need several operations to
// commit together use the package functions over their own transaction.
type Service interface {
	Debit(ctx context.Context, accountID string, amount int64) (int64, error)
	Credit(ctx context.Context, accountID string, amount int64) (int64, error)
	UpsertInventory(ctx context.Context, accountID string, itemID, delta int) (int, error)
	GetBalance(ctx context.Context, accountID string) (int64, error)
}

type service struct {
	repo repository.Ledger
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger) Service {
	return &service{repo: repo}
}

func (s *service) Debit(ctx context.Context, accountID string, amount int64) (int64, error) {
	var balance int64
	err := s.inTx(ctx, func(tx repository.LedgerTx) error {
		var err error
		balance, err = Debit(ctx, tx, accountID, amount)
		return err
	})
	return balance, err
}

func (s *service) Credit(ctx context.Context, accountID string, amount int64) (int64, error) {
	var balance int64
	err := s.inTx(ctx, func(tx repository.LedgerTx) error {
		var err error
		balance, err = Credit(ctx, tx, accountID, amount)
		return err
	})
	return balance, err
}

func (s *service) UpsertInventory(ctx context.Context, accountID string, itemID, delta int) (int, error) {
	var count int
	err := s.inTx(ctx, func(tx repository.LedgerTx) error {
		var err error
		count, err = UpsertInventory(ctx, tx, accountID, itemID, delta)
		return err
	})
	return count, err
}

func (s *service) GetBalance(ctx context.Context, accountID string) (int64, error) {
	return GetBalance(ctx, s.repo, accountID)
}

func (s *service) inTx(ctx context.Context, fn func(tx repository.LedgerTx) error) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := fn(tx); err != nil {
		logger.FromContext(ctx).Debug(LogMsgLedgerOpFailed, "error", err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitFailed, err)
	}
	return nil
}
