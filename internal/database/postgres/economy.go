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

// EconomyRepository implements repository.Economy for PostgreSQL
type EconomyRepository struct {
	store
}

// NewEconomyRepository creates a new EconomyRepository
func NewEconomyRepository(pool *pgxpool.Pool) *EconomyRepository {
	return &EconomyRepository{store: newStore(pool)}
}

// BeginTx starts a new transaction
func (r *EconomyRepository) BeginTx(ctx context.Context) (repository.EconomyTx, error) {
	return r.begin(ctx)
}

// GetInventory lists held items, ordered by item id
func (q queries) GetInventory(ctx context.Context, accountID string) ([]domain.InventoryEntry, error) {
	rows, err := q.db.Query(ctx, SQLGetInventory, accountID)
	if err != nil {
		return nil, wrapErr(opGetInventory, err)
	}
	defer rows.Close()

	var entries []domain.InventoryEntry
	for rows.Next() {
		var r itemRow
		var count int
		if err := rows.Scan(append(r.dest(), &count)...); err != nil {
			return nil, wrapErr(opGetInventory, err)
		}
		item, err := r.toDomain()
		if err != nil {
			return nil, wrapErr(opGetInventory, err)
		}
		entries = append(entries, domain.InventoryEntry{AccountID: accountID, Item: item, Count: count})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(opGetInventory, err)
	}
	return entries, nil
}

// GetItem reads one item definition
func (q queries) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	var r itemRow
	if err := q.db.QueryRow(ctx, SQLGetItem, itemID).Scan(r.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", domain.ErrItemNotFound, itemID)
		}
		return nil, wrapErr(opGetItem, err)
	}
	item, err := r.toDomain()
	if err != nil {
		return nil, wrapErr(opGetItem, err)
	}
	return &item, nil
}

// GetListings returns every shop listing ordered by id
func (q queries) GetListings(ctx context.Context) ([]domain.Listing, error) {
	rows, err := q.db.Query(ctx, SQLGetListings)
	if err != nil {
		return nil, wrapErr(opGetListings, err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, wrapErr(opGetListings, err)
		}
		listings = append(listings, *listing)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(opGetListings, err)
	}
	return listings, nil
}

// GetListingByID resolves a listing by its id
func (q queries) GetListingByID(ctx context.Context, listingID int) (*domain.Listing, error) {
	listing, err := scanListing(q.db.QueryRow(ctx, SQLGetListingByID, listingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", domain.ErrListingNotFound, listingID)
		}
		return nil, wrapErr(opGetListing, err)
	}
	return listing, nil
}

// GetListingBySlug resolves a listing by the slug of its item
func (q queries) GetListingBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	listing, err := scanListing(q.db.QueryRow(ctx, SQLGetListingBySlug, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrListingNotFound, slug)
		}
		return nil, wrapErr(opGetListing, err)
	}
	return listing, nil
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	var r itemRow
	if err := row.Scan(append([]any{&l.ID, &l.Cost}, r.dest()...)...); err != nil {
		return nil, err
	}
	item, err := r.toDomain()
	if err != nil {
		return nil, err
	}
	l.Item = item
	return &l, nil
}

// InsertPurchaseRecords appends the records in one batch and returns them with ids
func (q queries) InsertPurchaseRecords(ctx context.Context, records []domain.PurchaseRecord) ([]domain.PurchaseRecord, error) {
	if len(records) == 0 {
		return nil, nil
	}

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(SQLInsertPurchaseRecord, rec.AccountID, rec.ItemID, rec.ListingID, rec.PurchasedAt)
	}

	results := q.db.SendBatch(ctx, batch)
	out := make([]domain.PurchaseRecord, len(records))
	for i, rec := range records {
		if err := results.QueryRow().Scan(&rec.ID); err != nil {
			_ = results.Close()
			return nil, wrapErr(opInsertPurchases, err)
		}
		out[i] = rec
	}
	if err := results.Close(); err != nil {
		return nil, wrapErr(opInsertPurchases, err)
	}
	return out, nil
}

// GetPurchaseHistory returns the newest records first
func (q queries) GetPurchaseHistory(ctx context.Context, accountID string, limit int) ([]domain.PurchaseRecord, error) {
	rows, err := q.db.Query(ctx, SQLGetPurchaseHistory, accountID, limit)
	if err != nil {
		return nil, wrapErr(opGetPurchases, err)
	}
	defer rows.Close()

	var records []domain.PurchaseRecord
	for rows.Next() {
		var rec domain.PurchaseRecord
		if err := rows.Scan(&rec.ID, &rec.AccountID, &rec.ItemID, &rec.ListingID, &rec.PurchasedAt); err != nil {
			return nil, wrapErr(opGetPurchases, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(opGetPurchases, err)
	}
	return records, nil
}
