package repository

import (
	"context"

	"github.com/osse101/catchbot/internal/domain"
)

// Effects defines the persistence the item effect resolver needs
type Effects interface {
	InventoryReader
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)
	BeginTx(ctx context.Context) (LedgerTx, error)
}
