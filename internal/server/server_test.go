package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/catchbot/internal/catalog"
	"github.com/osse101/catchbot/internal/catch"
	"github.com/osse101/catchbot/internal/database/gormstore"
	"github.com/osse101/catchbot/internal/economy"
	"github.com/osse101/catchbot/internal/effects"
	"github.com/osse101/catchbot/internal/ratelimit"
	"github.com/osse101/catchbot/internal/repository"
	"github.com/osse101/catchbot/internal/reward"
)

const testAPIKey = "test-key"

type testServer struct {
	t     *testing.T
	h     http.Handler
	repos *gormstore.Repositories
}

func newTestServer(t *testing.T, limits ratelimit.Limits) *testServer {
	t.Helper()
	ctx := context.Background()
	repos, err := gormstore.OpenSQLite(ctx, filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	_, err = catalog.LoadAndSync(ctx, catalog.NewLoader(), "../../configs/catalog.json", repos.Catalog)
	require.NoError(t, err)

	limiter := ratelimit.NewService(repos.Attempts, ratelimit.NewSettingsResolver(repos.Attempts, limits))
	// always lands in Common and picks the last common reward
	selector := reward.NewSelector(nil, func() float64 { return 0.99 })

	h := NewRouter(Config{APIKey: testAPIKey}, Services{
		Economy: economy.NewService(repos.Economy, economy.DefaultConfig()),
		Catch:   catch.NewService(repos.Catch, limiter, selector, catch.DefaultConfig()),
		Limiter: limiter,
		Effects: effects.NewService(repos.Effects),
		Health:  []repository.Health{repos.Ledger},
	})
	return &testServer{t: t, h: h, repos: repos}
}

func (s *testServer) do(method, path, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) decode(rec *httptest.ResponseRecorder, out any) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func TestServer_ShopFlow(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultLimits())

	rec := s.do(http.MethodPost, "/api/v1/accounts", `{"account_id":"u1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/shop/purchase", `{"account_id":"u1","listing":"glow-bait","quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "new accounts start at zero")

	_, _, err := s.repos.Ledger.CreditBalance(context.Background(), "u1", 100)
	require.NoError(t, err)

	rec = s.do(http.MethodPost, "/api/v1/shop/purchase", `{"account_id":"u1","listing":"glow-bait","quantity":2}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var balance struct {
		Balance int64 `json:"balance"`
	}
	s.decode(s.do(http.MethodGet, "/api/v1/accounts/u1/balance", ""), &balance)
	assert.Equal(t, int64(20), balance.Balance)

	var inventory struct {
		Items []struct {
			Slug  string `json:"slug"`
			Count int    `json:"count"`
		} `json:"items"`
	}
	s.decode(s.do(http.MethodGet, "/api/v1/accounts/u1/inventory", ""), &inventory)
	require.Len(t, inventory.Items, 1)
	assert.Equal(t, "glow-bait", inventory.Items[0].Slug)
	assert.Equal(t, 2, inventory.Items[0].Count)

	var history struct {
		Purchases []json.RawMessage `json:"purchases"`
	}
	s.decode(s.do(http.MethodGet, "/api/v1/accounts/u1/purchases?limit=10", ""), &history)
	assert.Len(t, history.Purchases, 2)

	rec = s.do(http.MethodGet, "/api/v1/accounts/ghost/inventory", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_CatchFlow(t *testing.T) {
	s := newTestServer(t, ratelimit.Limits{AttemptLimit: 2, WindowSeconds: 60})
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/accounts", `{"account_id":"u1"}`).Code)

	for i := 0; i < 2; i++ {
		rec := s.do(http.MethodPost, "/api/v1/catch", `{"account_id":"u1"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := s.do(http.MethodPost, "/api/v1/catch", `{"account_id":"u1"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	rec = s.do(http.MethodPost, "/api/v1/catch", `{"account_id":"u1","guild_id":"123"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, "guild bucket is separate")

	var status ratelimit.Status
	s.decode(s.do(http.MethodGet, "/api/v1/catch/status?account_id=u1", ""), &status)
	assert.False(t, status.Allowed)
	assert.Equal(t, 2, status.Limit)
}

func TestServer_AdminScopeSettings(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultLimits())

	rec := s.do(http.MethodPut, "/api/v1/admin/scopes/555", `{"attempt_limit":3,"window_seconds":120}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var settings struct {
		AttemptLimit int `json:"attempt_limit"`
	}
	s.decode(s.do(http.MethodGet, "/api/v1/admin/scopes/555", ""), &settings)
	assert.Equal(t, 3, settings.AttemptLimit)
}

func TestServer_AuthAndProbes(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultLimits())

	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shop", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rec := httptest.NewRecorder()
		s.h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestServer_SwaggerUI(t *testing.T) {
	s := newTestServer(t, ratelimit.DefaultLimits())

	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "swagger UI needs no API key")
	assert.Contains(t, rec.Body.String(), "swagger-ui")
}
