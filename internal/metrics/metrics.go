package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/osse101/catchbot/internal/domain"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	PurchasesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePurchasesTotal,
			Help: HelpTextPurchasesTotal,
		},
	)

	ItemsBought = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsBought,
			Help: HelpTextItemsBought,
		},
		[]string{LabelItem},
	)

	ItemsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsConsumed,
			Help: HelpTextItemsConsumed,
		},
		[]string{LabelItem},
	)

	CatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatchesTotal,
			Help: HelpTextCatchesTotal,
		},
		[]string{LabelTier},
	)

	FirstClaims = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameFirstClaims,
			Help: HelpTextFirstClaims,
		},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRateLimited,
			Help: HelpTextRateLimited,
		},
		[]string{LabelScopeKind},
	)

	MoneyEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneyEarned,
			Help: HelpTextMoneyEarned,
		},
	)

	MoneySpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMoneySpent,
			Help: HelpTextMoneySpent,
		},
	)

	AttemptsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAttemptsPurged,
			Help: HelpTextAttemptsPurged,
		},
	)

	EconomyOpsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEconomyOpsFailed,
			Help: HelpTextEconomyOpsFailed,
		},
		[]string{LabelOperation, LabelKind},
	)
)

// ScopeKind labels a scope without its unbounded guild id
func ScopeKind(scope domain.Scope) string {
	if scope.IsNoContext() {
		return ScopeKindNoContext
	}
	return ScopeKindGuild
}

// RecordFailure counts a failed operation as business or infrastructure
func RecordFailure(operation string, err error) {
	if err == nil {
		return
	}
	kind := FailureKindInfrastructure
	if domain.IsBusinessError(err) {
		kind = FailureKindBusiness
	}
	EconomyOpsFailed.WithLabelValues(operation, kind).Inc()
}

// Chat adapter metrics
var (
	DiscordCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDiscordCommands,
			Help: HelpTextDiscordCommands,
		},
		[]string{LabelCommand},
	)
)
