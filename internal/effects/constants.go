package effects

// Identity values of the passive aggregates
const (
	NoRarityBoost       = 0.0
	NeutralWorthFactor  = 1.0
	ConsumeQuantityUnit = 1
)

const (
	ErrMsgNotConsumableFmt       = "item %q cannot be consumed: %w"
	ErrMsgGetInventoryFailed     = "failed to get inventory: %w"
	ErrMsgGetAccountFailed       = "failed to get account: %w"
	ErrMsgGetItemFailed          = "failed to get item: %w"
	ErrMsgBeginTransactionFailed = "failed to begin transaction: %w"
	ErrMsgConsumeFailed          = "failed to consume item: %w"
	ErrMsgCommitFailed           = "failed to commit consume: %w"
)

const (
	LogMsgConsumeCalled   = "Consume called"
	LogMsgItemConsumed    = "Item consumed"
	LogMsgPassiveBoosts   = "Passive boosts resolved"
	LogMsgBestConsumable  = "Best consumable resolved"
	LogMsgNoConsumableHit = "No consumable rarity boost held"
)
