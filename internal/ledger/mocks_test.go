package ledger

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/catchbot/internal/domain"
)

// MockLedgerOps implements repository.LedgerOps for testing
type MockLedgerOps struct {
	mock.Mock
}

func (m *MockLedgerOps) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerOps) DebitIfSufficient(ctx context.Context, accountID string, amount int64) (int64, bool, error) {
	args := m.Called(ctx, accountID, amount)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockLedgerOps) CreditBalance(ctx context.Context, accountID string, amount int64) (int64, bool, error) {
	args := m.Called(ctx, accountID, amount)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockLedgerOps) LockInventoryCount(ctx context.Context, accountID string, itemID int) (int, error) {
	args := m.Called(ctx, accountID, itemID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerOps) AddInventory(ctx context.Context, accountID string, itemID int, delta int) (int, error) {
	args := m.Called(ctx, accountID, itemID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerOps) SetInventoryCount(ctx context.Context, accountID string, itemID int, count int) error {
	args := m.Called(ctx, accountID, itemID, count)
	return args.Error(0)
}
