package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/repository"
)

// LedgerRepository implements repository.Ledger for PostgreSQL
type LedgerRepository struct {
	store
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{store: newStore(pool)}
}

// BeginTx starts a new transaction
func (r *LedgerRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	return r.begin(ctx)
}

// GetAccount reads an account
func (q queries) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	var a domain.Account
	err := q.db.QueryRow(ctx, SQLGetAccount, accountID).Scan(&a.ID, &a.Balance, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
		}
		return nil, wrapErr(opGetAccount, err)
	}
	return &a, nil
}

// EnsureAccount creates the account with a zero balance if it does not exist
func (q queries) EnsureAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	if _, err := q.db.Exec(ctx, SQLEnsureAccount, accountID); err != nil {
		return nil, wrapErr(opEnsureAccount, err)
	}
	return q.GetAccount(ctx, accountID)
}

// DebitIfSufficient subtracts amount only where the balance covers it
func (q queries) DebitIfSufficient(ctx context.Context, accountID string, amount int64) (int64, bool, error) {
	var balance int64
	err := q.db.QueryRow(ctx, SQLDebitIfSufficient, accountID, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, wrapErr(opDebit, err)
	}
	return balance, true, nil
}

// CreditBalance adds amount to the balance
func (q queries) CreditBalance(ctx context.Context, accountID string, amount int64) (int64, bool, error) {
	var balance int64
	err := q.db.QueryRow(ctx, SQLCreditBalance, accountID, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, wrapErr(opCredit, err)
	}
	return balance, true, nil
}

// LockInventoryCount reads the held count with FOR UPDATE
func (q queries) LockInventoryCount(ctx context.Context, accountID string, itemID int) (int, error) {
	var count int
	err := q.db.QueryRow(ctx, SQLLockInventoryCount, accountID, itemID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, wrapErr(opLockInventory, err)
	}
	return count, nil
}

// AddInventory inserts or increments an entry
func (q queries) AddInventory(ctx context.Context, accountID string, itemID int, delta int) (int, error) {
	var count int
	if err := q.db.QueryRow(ctx, SQLAddInventory, accountID, itemID, delta).Scan(&count); err != nil {
		return 0, wrapErr(opAddInventory, err)
	}
	return count, nil
}

// SetInventoryCount overwrites the count, deleting the row at zero
func (q queries) SetInventoryCount(ctx context.Context, accountID string, itemID int, count int) error {
	var err error
	if count <= 0 {
		_, err = q.db.Exec(ctx, SQLDeleteInventory, accountID, itemID)
	} else {
		_, err = q.db.Exec(ctx, SQLSetInventoryCount, accountID, itemID, count)
	}
	return wrapErr(opSetInventory, err)
}
