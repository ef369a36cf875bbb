package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/catchbot/internal/domain"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// queries holds every statement; it runs against the pool or a transaction
type queries struct {
	db querier
}

// txQueries is one open transaction. It implements every repository Tx interface.
type txQueries struct {
	queries
	tx pgx.Tx
}

// store is embedded by every repository
type store struct {
	queries
	pool *pgxpool.Pool
}

func newStore(pool *pgxpool.Pool) store {
	return store{queries: queries{db: pool}, pool: pool}
}

func (s store) begin(ctx context.Context) (*txQueries, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.Infrastructure(opBeginTx, err)
	}
	return &txQueries{queries: queries{db: tx}, tx: tx}, nil
}

// Ping checks connectivity
func (s store) Ping(ctx context.Context) error {
	return domain.Infrastructure(opPing, s.pool.Ping(ctx))
}

// Commit commits the transaction
func (t *txQueries) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return domain.Infrastructure(opCommitTx, err)
	}
	return nil
}

// Rollback rolls back the transaction
func (t *txQueries) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return domain.ErrTxClosed
		}
		return domain.Infrastructure(opRollbackTx, err)
	}
	return nil
}

// hashLockKey creates a consistent positive int64 from account + bucket for advisory locking
func hashLockKey(accountID, bucket string) int64 {
	h := sha256.Sum256([]byte(accountID + HashSeparator + bucket))
	return int64(binary.BigEndian.Uint64(h[:8]) & HashMaskPositiveInt64)
}

// foreignKeyError maps a foreign key violation to the matching not-found error
func foreignKeyError(err error) (error, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgForeignKeyViolation {
		return nil, false
	}
	switch pgErr.ConstraintName {
	case constraintInventoryAccount, constraintPurchaseAccount, constraintCatchAccount, constraintRewardClaimedBy:
		return domain.ErrAccountNotFound, true
	case constraintInventoryItem:
		return domain.ErrItemNotFound, true
	default:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, pgErr.ConstraintName), true
	}
}

// wrapErr turns a driver error into a domain error
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if mapped, ok := foreignKeyError(err); ok {
		return mapped
	}
	return domain.Infrastructure(op, err)
}

// itemRow scans the itemColumns projection
type itemRow struct {
	item  domain.Item
	slug  *string
	kind  string
	value *float64
}

func (r *itemRow) dest() []any {
	return []any{&r.item.ID, &r.item.Name, &r.slug, &r.item.Description, &r.kind, &r.value, &r.item.IsPassive, &r.item.IsConsumable}
}

func (r *itemRow) toDomain() (domain.Item, error) {
	item := r.item
	if r.slug != nil {
		item.Slug = *r.slug
	}
	effect, err := domain.NewEffect(domain.EffectKind(r.kind), r.value)
	if err != nil {
		return domain.Item{}, fmt.Errorf("item %d: %w", item.ID, err)
	}
	item.Effect = effect
	return item, nil
}

// nullableSlug stores an empty slug as NULL so the unique index ignores it
func nullableSlug(slug string) *string {
	if slug == "" {
		return nil
	}
	return &slug
}
