package economy

import "time"

// ==================== Defaults ====================

const (
	// DefaultListingCacheSize bounds the number of cached listing lookups
	DefaultListingCacheSize = 256

	// DefaultListingCacheTTL is how long a cached listing stays valid
	DefaultListingCacheTTL = time.Minute

	// DefaultHistoryLimit is used when a history read passes no limit
	DefaultHistoryLimit = 50
)

// metricOpPurchase labels purchase failures
const metricOpPurchase = "purchase"

// Cache keys
const (
	cacheKeyAll        = "all"
	cacheKeyIDPrefix   = "id:"
	cacheKeySlugPrefix = "slug:"
)

// ==================== Error Messages ====================

const (
	ErrMsgInvalidQuantityFmt      = "invalid quantity: %d: %w"
	ErrMsgQuantityExceedsMaxFmt   = "quantity %d exceeds maximum allowed (%d): %w"
	ErrMsgCostOverflowFmt         = "total cost of %d x %d overflows: %w"
	ErrMsgEmptyAccountID          = "account id is required: %w"
	ErrMsgEmptyListingRef         = "listing identifier is required: %w"
	ErrMsgResolveListingFailedFmt = "failed to resolve listing %q: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgDebitFailed             = "failed to debit purchase: %w"
	ErrMsgRecordPurchaseFailed    = "failed to record purchase: %w"
	ErrMsgUpdateInventoryFailed   = "failed to update inventory: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgPurchaseCalled         = "Purchase called"
	LogMsgItemPurchased          = "Item purchased"
	LogMsgPurchaseRejected       = "Purchase rejected"
	LogMsgGetShopListingsCalled  = "GetShopListings called"
	LogMsgGetInventoryCalled     = "GetInventory called"
	LogMsgEnsureAccountCalled    = "EnsureAccount called"
	LogMsgListingCacheHit        = "Listing cache hit"
	LogMsgListingCacheInvalidate = "Listing cache invalidated"
)
