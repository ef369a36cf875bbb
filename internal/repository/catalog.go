package repository

import (
	"context"

	"github.com/osse101/catchbot/internal/domain"
)

// Catalog defines the interface for seeding definitions by natural key
type Catalog interface {
	// UpsertItem matches on item name and returns the item id.
	UpsertItem(ctx context.Context, item domain.Item) (int, error)
	// UpsertListing matches on the listed item and returns the listing id.
	UpsertListing(ctx context.Context, itemID int, cost int64) (int, error)
	// UpsertReward matches on reward name and returns the reward id. First claim
	// state is never overwritten.
	UpsertReward(ctx context.Context, reward domain.Reward) (int, error)
}

// Health defines the readiness probe of a backend
type Health interface {
	Ping(ctx context.Context) error
}
