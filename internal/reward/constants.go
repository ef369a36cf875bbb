package reward

const (
	ErrMsgGetRewardsFailed   = "failed to get rewards for tier %s: %w"
	ErrMsgClaimFirstFailed   = "failed to record first claim: %w"
	ErrMsgInvalidWeightFmt   = "weight for tier %s must not be negative: %w"
	ErrMsgWeightSumFmt       = "weights must sum to a positive total, got %.2f: %w"
	ErrMsgUnknownTierKeyFmt  = "unknown tier in weight table: %d: %w"
	LogMsgTierDrawn          = "Tier drawn"
	LogMsgRewardPicked       = "Reward picked"
	LogMsgFirstClaimRecorded = "First claim recorded"
	LogMsgFirstClaimLost     = "First claim already taken"
)
