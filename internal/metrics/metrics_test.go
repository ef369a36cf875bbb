package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/catchbot/internal/domain"
)

func TestScopeKind(t *testing.T) {
	assert.Equal(t, ScopeKindNoContext, ScopeKind(domain.NoContextScope()))
	assert.Equal(t, ScopeKindGuild, ScopeKind(domain.GuildScope("42")))
}

func TestRecordFailure(t *testing.T) {
	business := EconomyOpsFailed.WithLabelValues("test_purchase", FailureKindBusiness)
	infra := EconomyOpsFailed.WithLabelValues("test_purchase", FailureKindInfrastructure)
	beforeBusiness := testutil.ToFloat64(business)
	beforeInfra := testutil.ToFloat64(infra)

	RecordFailure("test_purchase", domain.ErrInsufficientFunds)
	RecordFailure("test_purchase", domain.Infrastructure("debit", errors.New("conn reset")))
	RecordFailure("test_purchase", nil)

	assert.Equal(t, beforeBusiness+1, testutil.ToFloat64(business))
	assert.Equal(t, beforeInfra+1, testutil.ToFloat64(infra))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/accounts/{accountID}/balance", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/accounts/{accountID}/balance", "418")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts/u-123/balance", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
