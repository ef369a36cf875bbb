package ledger

import (
	"context"
	"fmt"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/repository"
)

// Debit subtracts amount from the balance with a single conditional update.
// When no row changes the account is re-read to tell a missing account apart
// from an insufficient balance.
func Debit(ctx context.Context, ops repository.LedgerOps, accountID string, amount int64) (int64, error) {
	if amount < 0 {
		return 0, fmt.Errorf(ErrMsgNegativeDebitFmt, amount, domain.ErrInvalidQuantity)
	}

	balance, applied, err := ops.DebitIfSufficient(ctx, accountID, amount)
	if err != nil {
		return 0, err
	}
	if applied {
		logger.FromContext(ctx).Debug(LogMsgDebitApplied, "account_id", accountID, "amount", amount, "balance", balance)
		return balance, nil
	}

	account, err := ops.GetAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	logger.FromContext(ctx).Debug(LogMsgDebitRejected, "account_id", accountID, "amount", amount, "balance", account.Balance)
	return 0, &domain.InsufficientFundsError{Balance: account.Balance, Required: amount}
}

// Credit adds a positive amount to the balance.
func Credit(ctx context.Context, ops repository.LedgerOps, accountID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf(ErrMsgNonPositiveCreditFmt, amount, domain.ErrInvalidQuantity)
	}

	balance, found, err := ops.CreditBalance(ctx, accountID, amount)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf(ErrMsgAccountNotFoundFmt, domain.ErrAccountNotFound, accountID)
	}
	logger.FromContext(ctx).Debug(LogMsgCreditApplied, "account_id", accountID, "amount", amount, "balance", balance)
	return balance, nil
}

// UpsertInventory applies delta to the held count of an item and returns the
// new count. Increments insert or add atomically. Decrements lock the entry,
// reject removing more than is held, and delete the entry at zero. Call it
// inside a transaction when delta is negative.
func UpsertInventory(ctx context.Context, ops repository.LedgerOps, accountID string, itemID, delta int) (int, error) {
	if delta == 0 {
		return 0, fmt.Errorf(ErrMsgZeroDeltaFmt, domain.ErrInvalidQuantity)
	}

	if delta > 0 {
		count, err := ops.AddInventory(ctx, accountID, itemID, delta)
		if err != nil {
			return 0, err
		}
		logger.FromContext(ctx).Debug(LogMsgInventoryUpserted, "account_id", accountID, "item_id", itemID, "delta", delta, "count", count)
		return count, nil
	}

	held, err := ops.LockInventoryCount(ctx, accountID, itemID)
	if err != nil {
		return 0, err
	}
	count := held + delta
	if count < 0 {
		return 0, fmt.Errorf(ErrMsgDecrementExceedsFmt, -delta, itemID, held, domain.ErrInsufficientInventory)
	}
	if err := ops.SetInventoryCount(ctx, accountID, itemID, count); err != nil {
		return 0, err
	}

	log := logger.FromContext(ctx)
	if count == 0 {
		log.Debug(LogMsgInventoryRowDelete, "account_id", accountID, "item_id", itemID)
	} else {
		log.Debug(LogMsgInventoryUpserted, "account_id", accountID, "item_id", itemID, "delta", delta, "count", count)
	}
	return count, nil
}

// GetBalance reads the current balance.
func GetBalance(ctx context.Context, ops repository.LedgerOps, accountID string) (int64, error) {
	account, err := ops.GetAccount(ctx, accountID)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}
