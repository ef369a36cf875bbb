package economy

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/ledger"
	"github.com/osse101/catchbot/internal/logger"
	"github.com/osse101/catchbot/internal/repository"
)

// PurchaseResult describes a committed purchase
type PurchaseResult struct {
	Listing        domain.Listing          `json:"listing"`
	Quantity       int                     `json:"quantity"`
	TotalCost      int64                   `json:"total_cost"`
	Balance        int64                   `json:"balance"`
	InventoryCount int                     `json:"inventory_count"`
	Records        []domain.PurchaseRecord `json:"records"`
}

// Service defines the interface for shop and account operations
type Service interface {
	Purchase(ctx context.Context, accountID, listingRef string, quantity int) (*PurchaseResult, error)
	GetShopListings(ctx context.Context) ([]domain.Listing, error)
	GetInventory(ctx context.Context, accountID string) ([]domain.InventoryEntry, error)
	GetAccountBalance(ctx context.Context, accountID string) (int64, error)
	GetPurchaseHistory(ctx context.Context, accountID string, limit int) ([]domain.PurchaseRecord, error)
	EnsureAccount(ctx context.Context, accountID string) (*domain.Account, error)
	InvalidateListings(ctx context.Context)
}

// Config tunes the economy service
type Config struct {
	MaxPurchaseQuantity int
	ListingCacheSize    int
	ListingCacheTTL     time.Duration // zero disables the listing cache
}

// DefaultConfig returns the configuration used when none is supplied
func DefaultConfig() Config {
	return Config{
		MaxPurchaseQuantity: domain.MaxPurchaseQuantity,
		ListingCacheSize:    DefaultListingCacheSize,
		ListingCacheTTL:     DefaultListingCacheTTL,
	}
}

type service struct {
	repo   repository.Economy
	config Config
	cache  *listingCache
	now    func() time.Time
}

// NewService creates a new economy service
func NewService(repo repository.Economy, config Config) Service {
	if config.MaxPurchaseQuantity <= 0 {
		config.MaxPurchaseQuantity = domain.MaxPurchaseQuantity
	}
	if config.ListingCacheSize <= 0 {
		config.ListingCacheSize = DefaultListingCacheSize
	}

	s := &service{
		repo:   repo,
		config: config,
		now:    func() time.Time { return time.Now().UTC() },
	}
	if config.ListingCacheTTL > 0 {
		s.cache = newListingCache(config.ListingCacheSize, config.ListingCacheTTL)
	}
	return s
}

func (s *service) GetShopListings(ctx context.Context) ([]domain.Listing, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgGetShopListingsCalled)

	if listings, ok := s.cache.getAll(); ok {
		log.Debug(LogMsgListingCacheHit, "key", cacheKeyAll)
		return listings, nil
	}

	listings, err := s.repo.GetListings(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.putAll(listings)
	return listings, nil
}

func (s *service) GetInventory(ctx context.Context, accountID string) ([]domain.InventoryEntry, error) {
	logger.FromContext(ctx).Debug(LogMsgGetInventoryCalled, "account_id", accountID)

	if _, err := s.repo.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.repo.GetInventory(ctx, accountID)
}

func (s *service) GetAccountBalance(ctx context.Context, accountID string) (int64, error) {
	return ledger.GetBalance(ctx, s.repo, accountID)
}

func (s *service) GetPurchaseHistory(ctx context.Context, accountID string, limit int) ([]domain.PurchaseRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > domain.MaxPurchaseRecordsPerQuery {
		limit = domain.MaxPurchaseRecordsPerQuery
	}
	if _, err := s.repo.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.repo.GetPurchaseHistory(ctx, accountID, limit)
}

func (s *service) EnsureAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	logger.FromContext(ctx).Info(LogMsgEnsureAccountCalled, "account_id", accountID)

	if accountID == "" {
		return nil, fmt.Errorf(ErrMsgEmptyAccountID, domain.ErrInvalidInput)
	}
	return s.repo.EnsureAccount(ctx, accountID)
}

func (s *service) InvalidateListings(ctx context.Context) {
	logger.FromContext(ctx).Info(LogMsgListingCacheInvalidate)
	s.cache.purge()
}
