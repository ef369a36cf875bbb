package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/repository"
)

// LedgerRepository implements repository.Ledger using GORM
type LedgerRepository struct {
	store
}

// BeginTx starts a new transaction
func (r *LedgerRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	return r.begin(ctx)
}

// GetAccount reads an account
func (q queries) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	var m Account
	if err := q.with(ctx).Where("account_id = ?", accountID).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
		}
		return nil, wrapErr(opGetAccount, err)
	}
	return &domain.Account{ID: m.AccountID, Balance: m.Balance, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}, nil
}

// EnsureAccount creates the account with a zero balance if it does not exist
func (q queries) EnsureAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	now := time.Now().UTC()
	err := q.with(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "account_id"}}, DoNothing: true}).
		Create(&Account{AccountID: accountID, CreatedAt: now, UpdatedAt: now}).Error
	if err != nil {
		return nil, wrapErr(opEnsureAccount, err)
	}
	return q.GetAccount(ctx, accountID)
}

// DebitIfSufficient subtracts amount only where the balance covers it.
// The returned balance is exact when called inside a transaction.
func (q queries) DebitIfSufficient(ctx context.Context, accountID string, amount int64) (int64, bool, error) {
	result := q.with(ctx).
		Model(&Account{}).
		Where("account_id = ? AND balance >= ?", accountID, amount).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, false, wrapErr(opDebit, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, false, nil
	}
	balance, err := q.balance(ctx, accountID, opDebit)
	return balance, err == nil, err
}

// CreditBalance adds amount to the balance
func (q queries) CreditBalance(ctx context.Context, accountID string, amount int64) (int64, bool, error) {
	result := q.with(ctx).
		Model(&Account{}).
		Where("account_id = ?", accountID).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, false, wrapErr(opCredit, result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, false, nil
	}
	balance, err := q.balance(ctx, accountID, opCredit)
	return balance, err == nil, err
}

func (q queries) balance(ctx context.Context, accountID, op string) (int64, error) {
	var m Account
	if err := q.with(ctx).Select("balance").Where("account_id = ?", accountID).Take(&m).Error; err != nil {
		return 0, wrapErr(op, err)
	}
	return m.Balance, nil
}

// LockInventoryCount reads the held count, locking the row on PostgreSQL.
// SQLite ignores the locking clause; its single connection serializes writers.
func (q queries) LockInventoryCount(ctx context.Context, accountID string, itemID int) (int, error) {
	var m InventoryEntry
	err := q.with(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_id = ? AND item_id = ?", accountID, itemID).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, wrapErr(opLockInventory, err)
	}
	return m.Count, nil
}

// AddInventory inserts or increments an entry
func (q queries) AddInventory(ctx context.Context, accountID string, itemID int, delta int) (int, error) {
	err := q.with(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "item_id"}},
			DoUpdates: clause.Assignments(map[string]any{"count": gorm.Expr("inventory_entries.count + excluded.count")}),
		}).
		Create(&InventoryEntry{AccountID: accountID, ItemID: itemID, Count: delta}).Error
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, q.foreignKeyTarget(ctx, err, accountID)
		}
		return 0, wrapErr(opAddInventory, err)
	}

	var m InventoryEntry
	if err := q.with(ctx).Where("account_id = ? AND item_id = ?", accountID, itemID).Take(&m).Error; err != nil {
		return 0, wrapErr(opAddInventory, err)
	}
	return m.Count, nil
}

// SetInventoryCount overwrites the count, deleting the row at zero
func (q queries) SetInventoryCount(ctx context.Context, accountID string, itemID int, count int) error {
	if count <= 0 {
		err := q.with(ctx).Where("account_id = ? AND item_id = ?", accountID, itemID).Delete(&InventoryEntry{}).Error
		return wrapErr(opSetInventory, err)
	}
	err := q.with(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"count"}),
		}).
		Create(&InventoryEntry{AccountID: accountID, ItemID: itemID, Count: count}).Error
	return wrapErr(opSetInventory, err)
}
