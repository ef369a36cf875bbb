package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/catchbot/internal/domain"
)

// CatalogRepository implements repository.Catalog for PostgreSQL
type CatalogRepository struct {
	store
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{store: newStore(pool)}
}

// UpsertItem inserts or updates an item by name
func (q queries) UpsertItem(ctx context.Context, item domain.Item) (int, error) {
	kind, value := item.Effect.Columns()
	var id int
	err := q.db.QueryRow(ctx, SQLUpsertItem,
		item.Name, nullableSlug(item.Slug), item.Description,
		string(kind), value, item.IsPassive, item.IsConsumable,
	).Scan(&id)
	if err != nil {
		return 0, wrapErr(opUpsertItem, err)
	}
	return id, nil
}

// UpsertListing inserts or updates the listing of an item
func (q queries) UpsertListing(ctx context.Context, itemID int, cost int64) (int, error) {
	var id int
	if err := q.db.QueryRow(ctx, SQLUpsertListing, itemID, cost).Scan(&id); err != nil {
		return 0, wrapErr(opUpsertListing, err)
	}
	return id, nil
}

// UpsertReward inserts or updates a reward by name, keeping its first claim
func (q queries) UpsertReward(ctx context.Context, reward domain.Reward) (int, error) {
	var id int
	if err := q.db.QueryRow(ctx, SQLUpsertReward, reward.Name, reward.Worth, int(reward.Tier)).Scan(&id); err != nil {
		return 0, wrapErr(opUpsertReward, err)
	}
	return id, nil
}
