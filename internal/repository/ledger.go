package repository

import (
	"context"

	"github.com/osse101/catchbot/internal/domain"
)

// LedgerOps is the set of single-statement balance and inventory mutations.
// The repository itself and every transaction it opens implement it, so ledger
// operations can run standalone or inside a caller's transaction.
type LedgerOps interface {
	// GetAccount returns domain.ErrAccountNotFound when the account does not exist.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// DebitIfSufficient subtracts amount only where balance >= amount.
	// applied is false when no row matched.
	DebitIfSufficient(ctx context.Context, accountID string, amount int64) (newBalance int64, applied bool, err error)

	// CreditBalance adds amount. found is false when the account does not exist.
	CreditBalance(ctx context.Context, accountID string, amount int64) (newBalance int64, found bool, err error)

	// LockInventoryCount reads the held count, locking the row for the rest of
	// the transaction where the backend supports it. A missing row is 0.
	LockInventoryCount(ctx context.Context, accountID string, itemID int) (int, error)

	// AddInventory creates the entry or increments it by delta (> 0).
	AddInventory(ctx context.Context, accountID string, itemID int, delta int) (int, error)

	// SetInventoryCount overwrites the count, deleting the row when count is 0.
	SetInventoryCount(ctx context.Context, accountID string, itemID int, count int) error
}

// LedgerTx is a transaction exposing the ledger statements
type LedgerTx interface {
	Tx
	LedgerOps
}

// Ledger defines the interface for ledger persistence
type Ledger interface {
	LedgerOps
	BeginTx(ctx context.Context) (LedgerTx, error)
}
