package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/repository"
)

// EconomyRepository implements repository.Economy using GORM
type EconomyRepository struct {
	store
}

// BeginTx starts a new transaction
func (r *EconomyRepository) BeginTx(ctx context.Context) (repository.EconomyTx, error) {
	return r.begin(ctx)
}

// EffectsRepository implements repository.Effects using GORM
type EffectsRepository struct {
	store
}

// BeginTx starts a new transaction
func (r *EffectsRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	return r.begin(ctx)
}

// GetInventory lists held items, ordered by item id
func (q queries) GetInventory(ctx context.Context, accountID string) ([]domain.InventoryEntry, error) {
	var rows []InventoryEntry
	err := q.with(ctx).
		Preload("Item").
		Where("account_id = ?", accountID).
		Order("item_id").
		Find(&rows).Error
	if err != nil {
		return nil, wrapErr(opGetInventory, err)
	}

	entries := make([]domain.InventoryEntry, 0, len(rows))
	for _, row := range rows {
		item, err := toDomainItem(row.Item)
		if err != nil {
			return nil, wrapErr(opGetInventory, err)
		}
		entries = append(entries, domain.InventoryEntry{AccountID: row.AccountID, Item: item, Count: row.Count})
	}
	return entries, nil
}

// GetItem reads one item definition
func (q queries) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	var m Item
	if err := q.with(ctx).Where("item_id = ?", itemID).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrItemNotFound, itemID)
		}
		return nil, wrapErr(opGetItem, err)
	}
	item, err := toDomainItem(m)
	if err != nil {
		return nil, wrapErr(opGetItem, err)
	}
	return &item, nil
}

// GetListings returns every shop listing ordered by id
func (q queries) GetListings(ctx context.Context) ([]domain.Listing, error) {
	var rows []ShopListing
	if err := q.with(ctx).Preload("Item").Order("listing_id").Find(&rows).Error; err != nil {
		return nil, wrapErr(opGetListings, err)
	}

	listings := make([]domain.Listing, 0, len(rows))
	for _, row := range rows {
		listing, err := toDomainListing(row)
		if err != nil {
			return nil, wrapErr(opGetListings, err)
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// GetListingByID resolves a listing by its id
func (q queries) GetListingByID(ctx context.Context, listingID int) (*domain.Listing, error) {
	var row ShopListing
	if err := q.with(ctx).Preload("Item").Where("listing_id = ?", listingID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrListingNotFound, listingID)
		}
		return nil, wrapErr(opGetListing, err)
	}
	listing, err := toDomainListing(row)
	if err != nil {
		return nil, wrapErr(opGetListing, err)
	}
	return &listing, nil
}

// GetListingBySlug resolves a listing by the slug of its item
func (q queries) GetListingBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	var row ShopListing
	err := q.with(ctx).
		Preload("Item").
		Where("item_id IN (?)", q.with(ctx).Model(&Item{}).Select("item_id").Where("slug = ?", slug)).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrListingNotFound, slug)
		}
		return nil, wrapErr(opGetListing, err)
	}
	listing, err := toDomainListing(row)
	if err != nil {
		return nil, wrapErr(opGetListing, err)
	}
	return &listing, nil
}

func toDomainListing(row ShopListing) (domain.Listing, error) {
	item, err := toDomainItem(row.Item)
	if err != nil {
		return domain.Listing{}, err
	}
	return domain.Listing{ID: row.ListingID, Item: item, Cost: row.Cost}, nil
}

// InsertPurchaseRecords appends the records in one batch and returns them with ids
func (q queries) InsertPurchaseRecords(ctx context.Context, records []domain.PurchaseRecord) ([]domain.PurchaseRecord, error) {
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]PurchaseRecord, len(records))
	for i, rec := range records {
		rows[i] = PurchaseRecord{
			AccountID:   rec.AccountID,
			ItemID:      rec.ItemID,
			ListingID:   rec.ListingID,
			PurchasedAt: rec.PurchasedAt.UTC(),
		}
	}
	if err := q.with(ctx).Omit(clause.Associations).Create(&rows).Error; err != nil {
		if isForeignKeyViolation(err) {
			return nil, q.foreignKeyTarget(ctx, err, records[0].AccountID)
		}
		return nil, wrapErr(opInsertPurchases, err)
	}

	out := make([]domain.PurchaseRecord, len(rows))
	for i, row := range rows {
		out[i] = toDomainPurchase(row)
	}
	return out, nil
}

// GetPurchaseHistory returns the newest records first
func (q queries) GetPurchaseHistory(ctx context.Context, accountID string, limit int) ([]domain.PurchaseRecord, error) {
	var rows []PurchaseRecord
	err := q.with(ctx).
		Where("account_id = ?", accountID).
		Order("purchased_at DESC, purchase_id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, wrapErr(opGetPurchases, err)
	}

	records := make([]domain.PurchaseRecord, len(rows))
	for i, row := range rows {
		records[i] = toDomainPurchase(row)
	}
	return records, nil
}

func toDomainPurchase(row PurchaseRecord) domain.PurchaseRecord {
	return domain.PurchaseRecord{
		ID:          row.PurchaseID,
		AccountID:   row.AccountID,
		ItemID:      row.ItemID,
		ListingID:   row.ListingID,
		PurchasedAt: row.PurchasedAt,
	}
}
