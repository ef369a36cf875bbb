package catalog

// Paths
const (
	DefaultCatalogPath = "configs/catalog.json"
	SchemaPath         = "configs/schemas/catalog.schema.json"
)

// ==================== Error Messages ====================

const (
	ErrMsgReadCatalogFailed  = "failed to read catalog file: %w"
	ErrMsgSchemaFailedFmt    = "schema validation failed for %s: %w"
	ErrMsgParseCatalogFailed = "failed to parse catalog: %w"
	ErrMsgCatalogNil         = "catalog is nil"

	ErrFmtEmptyName          = "%w: %s at index %d has an empty name"
	ErrFmtDuplicateItemName  = "%w: item name %q"
	ErrFmtDuplicateSlug      = "%w: item slug %q"
	ErrFmtDuplicateReward    = "%w: reward name %q"
	ErrFmtDuplicateListing   = "%w: listing for item %q"
	ErrFmtBadEffect          = "%w: item %q: %v"
	ErrFmtNonPositiveEffect  = "%w: item %q effect value must be positive"
	ErrFmtRarityBoostTooHigh = "%w: item %q rarity boost %.2f exceeds %.2f"
	ErrFmtPassiveConsumable  = "%w: item %q cannot be both passive and consumable"
	ErrFmtUnknownListingItem = "%w: listing references unknown item %q"
	ErrFmtNegativeCost       = "%w: listing for item %q has negative cost"
	ErrFmtBadTier            = "%w: reward %q: %v"
	ErrFmtNegativeWorth      = "%w: reward %q has negative worth"

	ErrMsgUpsertItemFailedFmt    = "failed to upsert item %q: %w"
	ErrMsgUpsertListingFailedFmt = "failed to upsert listing for %q: %w"
	ErrMsgUpsertRewardFailedFmt  = "failed to upsert reward %q: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgCatalogLoaded     = "Catalog loaded"
	LogMsgSyncCompleted     = "Catalog sync completed"
	LogMsgTierWithoutReward = "Tier has no rewards, draws landing on it will fail"
)

const (
	kindItem   = "item"
	kindReward = "reward"
)
