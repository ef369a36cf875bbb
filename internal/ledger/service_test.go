package ledger

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/catchbot/internal/database/gormstore"
	"github.com/osse101/catchbot/internal/domain"
)

func newSQLiteService(t *testing.T) (Service, *gormstore.Repositories) {
	t.Helper()
	repos, err := gormstore.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return NewService(repos.Ledger), repos
}

func TestService_DebitCredit(t *testing.T) {
	svc, repos := newSQLiteService(t)
	ctx := context.Background()
	_, err := repos.Ledger.EnsureAccount(ctx, "u1")
	require.NoError(t, err)

	balance, err := svc.Credit(ctx, "u1", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	balance, err = svc.Debit(ctx, "u1", 40)
	require.NoError(t, err)
	assert.Equal(t, int64(60), balance)

	_, err = svc.Debit(ctx, "u1", 61)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	balance, err = svc.GetBalance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(60), balance)

	_, err = svc.Debit(ctx, "ghost", 1)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestService_ConcurrentDebitsNeverOverdraw(t *testing.T) {
	svc, repos := newSQLiteService(t)
	ctx := context.Background()
	_, err := repos.Ledger.EnsureAccount(ctx, "u1")
	require.NoError(t, err)
	_, err = svc.Credit(ctx, "u1", 100)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var ok, insufficient int
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Debit(ctx, "u1", 30)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, domain.ErrInsufficientFunds):
				insufficient++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	assert.Equal(t, 7, insufficient)
	balance, err := svc.GetBalance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)
}

func TestService_ZeroSumInventoryUpserts(t *testing.T) {
	svc, repos := newSQLiteService(t)
	ctx := context.Background()
	_, err := repos.Ledger.EnsureAccount(ctx, "u1")
	require.NoError(t, err)
	itemID, err := repos.Catalog.UpsertItem(ctx, domain.Item{Name: "Net"})
	require.NoError(t, err)

	_, err = svc.UpsertInventory(ctx, "u1", itemID, 2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, delta := range []int{5, -3, 4, -6} {
		wg.Add(1)
		go func(delta int) {
			defer wg.Done()
			_, _ = svc.UpsertInventory(ctx, "u1", itemID, delta)
		}(delta)
	}
	wg.Wait()

	entries, err := repos.Economy.GetInventory(ctx, "u1")
	require.NoError(t, err)
	// -6 may arrive before the increments and be rejected; every accepted
	// sequence leaves a non-negative count and no zero rows.
	for _, e := range entries {
		assert.Positive(t, e.Count)
	}

	count, err := svc.UpsertInventory(ctx, "u1", itemID, 1)
	require.NoError(t, err)
	_, err = svc.UpsertInventory(ctx, "u1", itemID, -count)
	require.NoError(t, err)

	entries, err = repos.Economy.GetInventory(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
