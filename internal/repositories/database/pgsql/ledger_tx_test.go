package pgsql

import (
	"testing"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustBalances_PaymentMovesMoneyIntoPaid(t *testing.T) {
	paid, remaining, err := adjustBalances(decimal.NewFromInt(1000), decimal.NewFromInt(4000), decimal.NewFromInt(2000))

	require.NoError(t, err)
	assert.True(t, paid.Equal(decimal.NewFromInt(3000)))
	assert.True(t, remaining.Equal(decimal.NewFromInt(2000)))
}

func TestAdjustBalances_RefundMovesMoneyBackOut(t *testing.T) {
	paid, remaining, err := adjustBalances(decimal.NewFromInt(1000), decimal.NewFromInt(4000), decimal.NewFromInt(500).Neg())

	require.NoError(t, err)
	assert.True(t, paid.Equal(decimal.NewFromInt(500)))
	assert.True(t, remaining.Equal(decimal.NewFromInt(4500)))
}

func TestAdjustBalances_ConcurrentOverpaymentRejected(t *testing.T) {
	// A second writer that raced the first sees the locked balances, not its
	// own stale read; pushing remaining below zero must fail, not commit.
	_, _, err := adjustBalances(decimal.NewFromInt(4500), decimal.NewFromInt(500), decimal.NewFromInt(2000))

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestAdjustBalances_VoidBelowZeroRejected(t *testing.T) {
	_, _, err := adjustBalances(decimal.NewFromInt(100), decimal.NewFromInt(4900), decimal.NewFromInt(300).Neg())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}
