package catch

// ==================== Defaults ====================

const (
	// DefaultHistoryLimit is used when a history read passes no limit
	DefaultHistoryLimit = 50

	// MaxHistoryLimit bounds catch history reads
	MaxHistoryLimit = 200
)

// metricOpCatch labels catch failures
const metricOpCatch = "catch"

// ==================== Error Messages ====================

const (
	ErrMsgEmptyAccountID          = "account id is required: %w"
	ErrMsgGetAccountFailed        = "failed to get account: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgPassiveBoostsFailed     = "failed to resolve passive boosts: %w"
	ErrMsgConsumableFailed        = "failed to resolve consumable boost: %w"
	ErrMsgConsumeFailed           = "failed to consume %s: %w"
	ErrMsgPickRewardFailed        = "failed to pick reward: %w"
	ErrMsgFirstClaimFailed        = "failed to settle first claim: %w"
	ErrMsgCreditFailed            = "failed to credit catch: %w"
	ErrMsgRecordCatchFailed       = "failed to record catch: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
	ErrMsgGetHistoryFailed        = "failed to get catch history: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgAttemptRewardCalled = "AttemptReward called"
	LogMsgRewardCaught        = "Reward caught"
	LogMsgCatchRateLimited    = "Catch rate limited"
	LogMsgEmptyRewardPool     = "Drawn tier has no rewards"
	LogMsgBoostsResolved      = "Catch boosts resolved"
	LogMsgCatchFailed         = "Catch failed"
)
