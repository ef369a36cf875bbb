package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/catchbot/internal/config"
	"github.com/osse101/catchbot/internal/domain"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		LogDir:               t.TempDir(),
		LogLevel:             "debug",
		LogFormat:            "text",
		ServiceName:          "catchbot-test",
		Environment:          "test",
		DBDriver:             config.DriverSQLite,
		SQLitePath:           filepath.Join(t.TempDir(), "bootstrap.db"),
		RateLimitBackend:     config.BackendSQL,
		DefaultAttemptLimit:  2,
		DefaultWindowSeconds: 60,
		MaxPurchaseQuantity:  5,
		FirstClaimBonus:      10,
		CatalogPath:          "../../configs/catalog.json",
		RetentionInterval:    time.Hour,
		RetentionMaxAge:      24 * time.Hour,
	}
}

func TestInitialize_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	repos, err := InitializeRepositories(ctx, cfg)
	require.NoError(t, err)

	svc := InitializeServices(cfg, repos)
	require.NoError(t, SyncCatalog(ctx, cfg, repos, svc))

	listings, err := svc.Economy.GetShopListings(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, listings)

	_, err = svc.Economy.EnsureAccount(ctx, "u1")
	require.NoError(t, err)
	_, err = svc.Economy.Purchase(ctx, "u1", "old-boot", 6)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "MAX_PURCHASE_QUANTITY is applied")

	status, err := svc.Limiter.CheckAllowed(ctx, "u1", domain.NoContextScope())
	require.NoError(t, err)
	assert.Equal(t, 2, status.Limit)

	retention, err := StartRetention(ctx, cfg, repos)
	require.NoError(t, err)
	require.NotNil(t, retention)

	GracefulShutdown(ctx, ShutdownComponents{Retention: retention, Repositories: repos})
	for _, h := range repos.Health {
		assert.Error(t, h.Ping(ctx), "store is closed")
	}
}

func TestInitializeRepositories_UnsupportedDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.DBDriver = "mysql"
	_, err := InitializeRepositories(context.Background(), cfg)
	assert.Error(t, err)
}

func TestSyncCatalog_MissingFile(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)
	repos, err := InitializeRepositories(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.json")
	assert.Error(t, SyncCatalog(ctx, cfg, repos, InitializeServices(cfg, repos)))
}

func TestStartRetention_Disabled(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.RetentionInterval = 0
	retention, err := StartRetention(context.Background(), cfg, &Repositories{})
	require.NoError(t, err)
	assert.Nil(t, retention)
	retention.Stop()
}

type stubServer struct{ err error }

func (s stubServer) Stop(context.Context) error { return s.err }

func TestGracefulShutdown_ContinuesOnError(t *testing.T) {
	closed := false
	repos := &Repositories{closers: []func() error{func() error { closed = true; return nil }}}

	GracefulShutdown(context.Background(), ShutdownComponents{
		Server:       stubServer{err: errors.New("busy")},
		Repositories: repos,
	})
	assert.True(t, closed)
}

func TestCleanupLogs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"session_2026-01-01_00-00-00.log",
		"session_2026-01-02_00-00-00.log",
		"session_2026-01-03_00-00-00.log",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	cleanupLogs(dir, 1)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"session_2026-01-03_00-00-00.log", "notes.txt"}, names)
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	cfg := sqliteConfig(t)
	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		slog.SetDefault(prev)
		_ = f.Close()
	})

	entries, err := os.ReadDir(cfg.LogDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
