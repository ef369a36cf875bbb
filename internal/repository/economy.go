package repository

import (
	"context"

	"github.com/osse101/catchbot/internal/domain"
)

// InventoryReader lists an account's held items with their definitions
type InventoryReader interface {
	GetInventory(ctx context.Context, accountID string) ([]domain.InventoryEntry, error)
}

// Economy defines the interface for shop and account persistence
type Economy interface {
	LedgerOps
	InventoryReader

	EnsureAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetListings(ctx context.Context) ([]domain.Listing, error)
	GetListingByID(ctx context.Context, listingID int) (*domain.Listing, error)
	GetListingBySlug(ctx context.Context, slug string) (*domain.Listing, error)
	GetPurchaseHistory(ctx context.Context, accountID string, limit int) ([]domain.PurchaseRecord, error)

	BeginTx(ctx context.Context) (EconomyTx, error)
}

// EconomyTx defines the interface for purchase transactions
type EconomyTx interface {
	LedgerTx
	InsertPurchaseRecords(ctx context.Context, records []domain.PurchaseRecord) ([]domain.PurchaseRecord, error)
}
