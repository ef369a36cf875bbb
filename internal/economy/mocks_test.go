package economy

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/repository"
)

// MockRepository implements repository.Economy for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRepository) DebitIfSufficient(ctx context.Context, accountID string, amount int64) (int64, bool, error) {
	args := m.Called(ctx, accountID, amount)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockRepository) CreditBalance(ctx context.Context, accountID string, amount int64) (int64, bool, error) {
	args := m.Called(ctx, accountID, amount)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockRepository) LockInventoryCount(ctx context.Context, accountID string, itemID int) (int, error) {
	args := m.Called(ctx, accountID, itemID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) AddInventory(ctx context.Context, accountID string, itemID int, delta int) (int, error) {
	args := m.Called(ctx, accountID, itemID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) SetInventoryCount(ctx context.Context, accountID string, itemID int, count int) error {
	return m.Called(ctx, accountID, itemID, count).Error(0)
}

func (m *MockRepository) GetInventory(ctx context.Context, accountID string) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryEntry), args.Error(1)
}

func (m *MockRepository) EnsureAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRepository) GetListings(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockRepository) GetListingByID(ctx context.Context, listingID int) (*domain.Listing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockRepository) GetListingBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockRepository) GetPurchaseHistory(ctx context.Context, accountID string, limit int) ([]domain.PurchaseRecord, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseRecord), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.EconomyTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.EconomyTx), args.Error(1)
}
