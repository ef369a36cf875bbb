package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/catchbot/internal/testing/leaktest"
)

var (
	testDBConnString string
)

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()

	if !testing.Short() {
		ctx := context.Background()
		var connStr string
		connStr, terminate = setupContainer(ctx)
		testDBConnString = connStr
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}

	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	// Handle potential panics from testcontainers
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func requireDatabase(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool("postgres://%zz", 5, time.Minute, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestNewPool_AppliesLimits(t *testing.T) {
	requireDatabase(t)

	pool, err := NewPool(testDBConnString, 3, 2*time.Minute, 10*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	cfg := pool.Config()
	assert.Equal(t, int32(3), cfg.MaxConns)
	assert.Equal(t, int32(DefaultMinConnections), cfg.MinConns)
	assert.Equal(t, 2*time.Minute, cfg.MaxConnIdleTime)
	assert.Equal(t, 10*time.Minute, cfg.MaxConnLifetime)
}

// TestPool_ConcurrentAccountWrites releases every connection and goroutine
// after concurrent transactional writes.
func TestPool_ConcurrentAccountWrites(t *testing.T) {
	requireDatabase(t)

	pool, err := NewPool(testDBConnString, 4, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, pool))
	_, err = pool.Exec(ctx, `INSERT INTO accounts (account_id, balance, created_at, updated_at)
		VALUES ('pool-test', 0, NOW(), NOW()) ON CONFLICT (account_id) DO UPDATE SET balance = 0`)
	require.NoError(t, err)

	checker := leaktest.NewGoroutineChecker(t)

	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := pool.Begin(ctx)
			if !assert.NoError(t, err) {
				return
			}
			defer func() { _ = tx.Rollback(ctx) }()

			_, err = tx.Exec(ctx, "UPDATE accounts SET balance = balance + 1 WHERE account_id = 'pool-test'")
			assert.NoError(t, err)
			assert.NoError(t, tx.Commit(ctx))
		}()
	}
	wg.Wait()

	var balance int64
	require.NoError(t, pool.QueryRow(ctx, "SELECT balance FROM accounts WHERE account_id = 'pool-test'").Scan(&balance))
	assert.Equal(t, int64(writers), balance)
	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())

	checker.Check(2)
}

// TestMigrate applies the embedded migrations twice; the second run is a no-op
func TestMigrate(t *testing.T) {
	requireDatabase(t)

	pool, err := NewPool(testDBConnString, 5, 1*time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Migrate(ctx, pool))

	for _, table := range []string{
		"accounts", "items", "shop_listings", "inventory_entries", "purchase_records",
		"rewards", "catch_records", "attempt_records", "scope_settings",
	} {
		var exists bool
		err := pool.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", "public."+table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}
}

func TestRollback_ThenMigrate(t *testing.T) {
	requireDatabase(t)

	pool, err := NewPool(testDBConnString, 2, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, pool))
	require.NoError(t, Rollback(ctx, pool))

	var exists bool
	require.NoError(t, pool.QueryRow(ctx, "SELECT to_regclass('public.scope_settings') IS NOT NULL").Scan(&exists))
	assert.False(t, exists, "latest migration is reverted")

	require.NoError(t, MigrationStatus(ctx, pool))
	require.NoError(t, Migrate(ctx, pool))
}

func TestOpenGorm_Postgres(t *testing.T) {
	requireDatabase(t)

	db, err := OpenGorm(GormConfig{Driver: DriverPostgres, DSN: testDBConnString, MaxConns: 4})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.Equal(t, 4, sqlDB.Stats().MaxOpenConnections)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

// TestOpenGorm_SQLite opens a file-backed sqlite database with a single connection
func TestOpenGorm_SQLite(t *testing.T) {
	db, err := OpenGorm(GormConfig{Driver: DriverSQLite, DSN: t.TempDir() + "/test.db"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestOpenGorm_UnknownDriver(t *testing.T) {
	_, err := OpenGorm(GormConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgUnknownDriver)
}
