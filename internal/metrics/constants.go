package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNamePurchasesTotal   = "purchases_total"
	MetricNameItemsBought      = "items_bought_total"
	MetricNameItemsConsumed    = "items_consumed_total"
	MetricNameCatchesTotal     = "catches_total"
	MetricNameFirstClaims      = "first_claims_total"
	MetricNameRateLimited      = "attempts_rate_limited_total"
	MetricNameMoneyEarned      = "money_earned_total"
	MetricNameMoneySpent       = "money_spent_total"
	MetricNameAttemptsPurged   = "attempts_purged_total"
	MetricNameEconomyOpsFailed = "economy_operation_failures_total"
)

// Chat adapter metric names
const (
	MetricNameDiscordCommands = "discord_commands_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextPurchasesTotal   = "Total number of committed purchases"
	HelpTextItemsBought      = "Total number of item units bought"
	HelpTextItemsConsumed    = "Total number of consumable units used"
	HelpTextCatchesTotal     = "Total number of completed catches by tier"
	HelpTextFirstClaims      = "Total number of first claims awarded"
	HelpTextRateLimited      = "Total number of attempts rejected by the rate limiter"
	HelpTextMoneyEarned      = "Total currency credited by catches"
	HelpTextMoneySpent       = "Total currency debited by purchases"
	HelpTextAttemptsPurged   = "Total number of expired attempt records deleted"
	HelpTextEconomyOpsFailed = "Total number of failed economy operations by operation and kind"
)

// Chat adapter metric help text
const (
	HelpTextDiscordCommands = "Total number of Discord slash commands handled by command"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelItem      = "item"
	LabelTier      = "tier"
	LabelScopeKind = "scope_kind"
	LabelOperation = "operation"
	LabelKind      = "kind"
	LabelCommand   = "command"
)

// Label values
const (
	ScopeKindNoContext = "dm"
	ScopeKindGuild     = "guild"

	FailureKindBusiness       = "business"
	FailureKindInfrastructure = "infrastructure"

	unmatchedRoute = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets are the request duration buckets in seconds
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
