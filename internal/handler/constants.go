package handler

import "time"

// Generic HTTP error messages for client responses.
// Internal error details are never written to the client.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
	ErrMsgInvalidRequestFormat  = "Invalid request format"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError     = "Something went wrong"
	ErrMsgAccountNotFoundError   = "Account not found"
	ErrMsgListingNotFoundError   = "Listing not found"
	ErrMsgItemNotFoundError      = "Item not found"
	ErrMsgRewardNotFoundError    = "Reward not found"
	ErrMsgResourceNotFoundError  = "Resource not found"
	ErrMsgNotEnoughMoneyError    = "Not enough money"
	ErrMsgNotEnoughItemsError    = "Not enough items"
	ErrMsgInvalidQuantityError   = "Invalid quantity"
	ErrMsgNotConsumableError     = "That item cannot be used up"
	ErrMsgInvalidInputError      = "Invalid request. Please check your inputs."
	ErrMsgRateLimitedError       = "Too many attempts. Try again in %ds"
	ErrMsgEmptyRewardPoolError   = "Nothing is biting right now. Please try again later."
	ErrMsgUnavailableError       = "Server is temporarily unavailable. Please try again later."
	ErrMsgDatabaseConnectionFail = "database connection failed"
)

// Validation messages per tag
const (
	ValidationMsgRequired  = "This field is required"
	ValidationMsgAccountID = "Must be 1-100 printable characters"
	ValidationMsgMax       = "Must be at most %s"
	ValidationMsgMin       = "Must be at least %s"
	ValidationMsgInvalid   = "Invalid value"
)

// Log messages
const (
	LogMsgDecodeFailed       = "Failed to decode request"
	LogMsgRequestDecoded     = "Request decoded"
	LogMsgRequestInvalid     = "Invalid request"
	LogMsgMissingQueryParam  = "Missing query parameter"
	LogMsgServiceError       = "Service error"
	LogMsgServiceRejected    = "Service rejected request"
	LogMsgEncodeFailed       = "Failed to encode JSON response"
	LogMsgWriteFailed        = "Failed to write response buffer"
	LogMsgReadinessFailed    = "Readiness check failed"
	LogMsgPurchaseCompleted  = "Purchase completed"
	LogMsgCatchCompleted     = "Catch completed"
	LogMsgItemConsumed       = "Item consumed"
	LogMsgScopeSettingsSaved = "Scope settings saved"
)

// Health statuses
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
)

// Route parameters and query keys
const (
	ParamAccountID = "accountID"
	ParamGuildID   = "guildID"
	QueryAccountID = "account_id"
	QueryGuildID   = "guild_id"
	QueryLimit     = "limit"
)

const (
	headerContentType = "Content-Type"
	headerRetryAfter  = "Retry-After"
	contentTypeJSON   = "application/json"

	readinessTimeout    = 2 * time.Second
	initialBufferSize   = 512
	maxPooledBufferSize = 64 << 10
	maxAccountIDLen     = 100
)
