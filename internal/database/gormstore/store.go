package gormstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/osse101/catchbot/internal/concurrency"
	"github.com/osse101/catchbot/internal/domain"
)

const (
	dialectPostgres = "postgres"

	pgForeignKeyViolation   = "23503"
	sqliteConstraintCode    = 19
	sqliteConstraintForeign = 787 // SQLITE_CONSTRAINT_FOREIGNKEY
	sqliteForeignKeyMessage = "FOREIGN KEY"

	constraintInventoryItem = "inventory_entries_item_id_fkey"

	opBeginTx         = "begin transaction"
	opCommitTx        = "commit transaction"
	opRollbackTx      = "rollback transaction"
	opEnsureAccount   = "ensure account"
	opGetAccount      = "get account"
	opDebit           = "debit balance"
	opCredit          = "credit balance"
	opLockInventory   = "lock inventory"
	opAddInventory    = "add inventory"
	opSetInventory    = "set inventory"
	opGetInventory    = "get inventory"
	opGetItem         = "get item"
	opGetListings     = "get listings"
	opGetListing      = "get listing"
	opInsertPurchases = "insert purchase records"
	opGetPurchases    = "get purchase history"
	opGetRewards      = "get rewards"
	opClaimFirst      = "claim first"
	opInsertCatch     = "insert catch record"
	opGetCatches      = "get catch history"
	opAdvisoryLock    = "acquire advisory lock"
	opCountAttempts   = "count attempts"
	opOldestAttempt   = "oldest attempt"
	opInsertAttempt   = "insert attempt"
	opDeleteAttempts  = "delete attempts"
	opRemoveAttempt   = "remove attempt"
	opEnsureScope     = "ensure scope settings"
	opUpsertScope     = "upsert scope settings"
	opUpsertItem      = "upsert item"
	opUpsertListing   = "upsert listing"
	opUpsertReward    = "upsert reward"
	opPing            = "ping"
	opMigrate         = "auto migrate"
)

// queries holds every statement; db is the root handle or an open transaction
type queries struct {
	db *gorm.DB
}

func (q queries) with(ctx context.Context) *gorm.DB {
	return q.db.WithContext(ctx)
}

// txQueries is one open transaction. It implements every repository Tx interface.
type txQueries struct {
	queries
}

// store is embedded by every repository
type store struct {
	queries
	locks *concurrency.LockManager
}

func (s store) begin(ctx context.Context) (*txQueries, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, domain.Infrastructure(opBeginTx, tx.Error)
	}
	return &txQueries{queries: queries{db: tx}}, nil
}

func (s store) isPostgres() bool {
	return s.db.Dialector.Name() == dialectPostgres
}

// Ping checks connectivity
func (s store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return domain.Infrastructure(opPing, err)
	}
	return domain.Infrastructure(opPing, sqlDB.PingContext(ctx))
}

// Commit commits the transaction
func (t *txQueries) Commit(ctx context.Context) error {
	if err := t.db.Commit().Error; err != nil {
		if isTxClosed(err) {
			return domain.ErrTxClosed
		}
		return domain.Infrastructure(opCommitTx, err)
	}
	return nil
}

// Rollback rolls back the transaction
func (t *txQueries) Rollback(ctx context.Context) error {
	if err := t.db.Rollback().Error; err != nil {
		if isTxClosed(err) {
			return domain.ErrTxClosed
		}
		return domain.Infrastructure(opRollbackTx, err)
	}
	return nil
}

func isTxClosed(err error) bool {
	return errors.Is(err, sql.ErrTxDone) || errors.Is(err, gorm.ErrInvalidTransaction)
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var sqliteErr *gosqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqliteConstraintForeign ||
			(sqliteErr.Code()&0xFF == sqliteConstraintCode && strings.Contains(sqliteErr.Error(), sqliteForeignKeyMessage))
	}
	return false
}

// wrapErr turns a driver error into a domain error
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	return domain.Infrastructure(op, err)
}

// foreignKeyTarget decides which side of an (account, item) reference is
// missing. PostgreSQL names the constraint; SQLite does not, so the account
// is looked up instead.
func (q queries) foreignKeyTarget(ctx context.Context, err error, accountID string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.ConstraintName == constraintInventoryItem {
			return domain.ErrItemNotFound
		}
		return domain.ErrAccountNotFound
	}

	var n int64
	if err := q.with(ctx).Model(&Account{}).Where("account_id = ?", accountID).Count(&n).Error; err != nil {
		return domain.Infrastructure(opGetAccount, err)
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}
	return domain.ErrItemNotFound
}

func toDomainItem(m Item) (domain.Item, error) {
	effect, err := domain.NewEffect(domain.EffectKind(m.EffectKind), m.EffectValue)
	if err != nil {
		return domain.Item{}, err
	}
	item := domain.Item{
		ID:           m.ItemID,
		Name:         m.ItemName,
		Description:  m.Description,
		Effect:       effect,
		IsPassive:    m.IsPassive,
		IsConsumable: m.IsConsumable,
	}
	if m.Slug != nil {
		item.Slug = *m.Slug
	}
	return item, nil
}

func fromDomainItem(item domain.Item) Item {
	kind, value := item.Effect.Columns()
	m := Item{
		ItemID:       item.ID,
		ItemName:     item.Name,
		Description:  item.Description,
		EffectKind:   string(kind),
		EffectValue:  value,
		IsPassive:    item.IsPassive,
		IsConsumable: item.IsConsumable,
	}
	if item.Slug != "" {
		slug := item.Slug
		m.Slug = &slug
	}
	return m
}
