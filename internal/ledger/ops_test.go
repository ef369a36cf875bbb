package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/catchbot/internal/domain"
)

func TestDebit_Applied(t *testing.T) {
	ops := new(MockLedgerOps)
	ops.On("DebitIfSufficient", mock.Anything, "u1", int64(30)).Return(int64(70), true, nil)

	balance, err := Debit(context.Background(), ops, "u1", 30)

	require.NoError(t, err)
	assert.Equal(t, int64(70), balance)
	ops.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
}

func TestDebit_InsufficientFunds(t *testing.T) {
	ops := new(MockLedgerOps)
	ops.On("DebitIfSufficient", mock.Anything, "u1", int64(30)).Return(int64(0), false, nil)
	ops.On("GetAccount", mock.Anything, "u1").Return(&domain.Account{ID: "u1", Balance: 20}, nil)

	_, err := Debit(context.Background(), ops, "u1", 30)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	var insufficient *domain.InsufficientFundsError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(20), insufficient.Balance)
	assert.Equal(t, int64(30), insufficient.Required)
}

func TestDebit_MissingAccount(t *testing.T) {
	ops := new(MockLedgerOps)
	ops.On("DebitIfSufficient", mock.Anything, "ghost", int64(5)).Return(int64(0), false, nil)
	ops.On("GetAccount", mock.Anything, "ghost").Return(nil, domain.ErrAccountNotFound)

	_, err := Debit(context.Background(), ops, "ghost", 5)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDebit_NegativeAmount(t *testing.T) {
	ops := new(MockLedgerOps)

	_, err := Debit(context.Background(), ops, "u1", -1)

	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	ops.AssertExpectations(t)
}

func TestCredit(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		setup   func(*MockLedgerOps)
		want    int64
		wantErr error
	}{
		{
			name:   "credited",
			amount: 15,
			setup: func(m *MockLedgerOps) {
				m.On("CreditBalance", mock.Anything, "u1", int64(15)).Return(int64(115), true, nil)
			},
			want: 115,
		},
		{
			name:    "zero amount",
			amount:  0,
			setup:   func(m *MockLedgerOps) {},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name:   "missing account",
			amount: 5,
			setup: func(m *MockLedgerOps) {
				m.On("CreditBalance", mock.Anything, "u1", int64(5)).Return(int64(0), false, nil)
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name:   "storage failure",
			amount: 5,
			setup: func(m *MockLedgerOps) {
				m.On("CreditBalance", mock.Anything, "u1", int64(5)).Return(int64(0), false, domain.Infrastructure("credit", errors.New("conn reset")))
			},
			wantErr: domain.ErrInfrastructure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := new(MockLedgerOps)
			tt.setup(ops)

			got, err := Credit(context.Background(), ops, "u1", tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpsertInventory_Increment(t *testing.T) {
	ops := new(MockLedgerOps)
	ops.On("AddInventory", mock.Anything, "u1", 7, 3).Return(5, nil)

	count, err := UpsertInventory(context.Background(), ops, "u1", 7, 3)

	require.NoError(t, err)
	assert.Equal(t, 5, count)
	ops.AssertNotCalled(t, "LockInventoryCount", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsertInventory_DecrementToZeroDeletes(t *testing.T) {
	ops := new(MockLedgerOps)
	ops.On("LockInventoryCount", mock.Anything, "u1", 7).Return(2, nil)
	ops.On("SetInventoryCount", mock.Anything, "u1", 7, 0).Return(nil)

	count, err := UpsertInventory(context.Background(), ops, "u1", 7, -2)

	require.NoError(t, err)
	assert.Equal(t, 0, count)
	ops.AssertExpectations(t)
}

func TestUpsertInventory_DecrementBeyondHeld(t *testing.T) {
	ops := new(MockLedgerOps)
	ops.On("LockInventoryCount", mock.Anything, "u1", 7).Return(1, nil)

	_, err := UpsertInventory(context.Background(), ops, "u1", 7, -2)

	assert.ErrorIs(t, err, domain.ErrInsufficientInventory)
	ops.AssertNotCalled(t, "SetInventoryCount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpsertInventory_ZeroDelta(t *testing.T) {
	ops := new(MockLedgerOps)

	_, err := UpsertInventory(context.Background(), ops, "u1", 7, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}
