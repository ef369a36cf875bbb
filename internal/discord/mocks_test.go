package discord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/catchbot/internal/catch"
	"github.com/osse101/catchbot/internal/domain"
	"github.com/osse101/catchbot/internal/economy"
	"github.com/osse101/catchbot/internal/effects"
)

type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) Purchase(ctx context.Context, accountID, listingRef string, quantity int) (*economy.PurchaseResult, error) {
	args := m.Called(ctx, accountID, listingRef, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.PurchaseResult), args.Error(1)
}

func (m *MockEconomyService) GetShopListings(ctx context.Context) ([]domain.Listing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockEconomyService) GetInventory(ctx context.Context, accountID string) ([]domain.InventoryEntry, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryEntry), args.Error(1)
}

func (m *MockEconomyService) GetAccountBalance(ctx context.Context, accountID string) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEconomyService) GetPurchaseHistory(ctx context.Context, accountID string, limit int) ([]domain.PurchaseRecord, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseRecord), args.Error(1)
}

func (m *MockEconomyService) EnsureAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockEconomyService) InvalidateListings(ctx context.Context) {
	m.Called(ctx)
}

type MockCatchService struct {
	mock.Mock
}

func (m *MockCatchService) AttemptReward(ctx context.Context, accountID string, scope domain.Scope) (*catch.Result, error) {
	args := m.Called(ctx, accountID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catch.Result), args.Error(1)
}

func (m *MockCatchService) GetCatchHistory(ctx context.Context, accountID string, limit int) ([]domain.CatchRecord, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatchRecord), args.Error(1)
}

type MockEffectsService struct {
	mock.Mock
}

func (m *MockEffectsService) GetPassiveBoosts(ctx context.Context, accountID string) (effects.PassiveBoosts, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(effects.PassiveBoosts), args.Error(1)
}

func (m *MockEffectsService) GetBestConsumableRarityBoost(ctx context.Context, accountID string) (*effects.ConsumableBoost, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*effects.ConsumableBoost), args.Error(1)
}

func (m *MockEffectsService) Consume(ctx context.Context, accountID string, itemID int) (int, error) {
	args := m.Called(ctx, accountID, itemID)
	return args.Int(0), args.Error(1)
}

type MockHealth struct {
	mock.Mock
}

func (m *MockHealth) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
