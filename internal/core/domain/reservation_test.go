package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition_Booking(t *testing.T) {
	testCases := []struct {
		name    string
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"confirmed to rescheduled", StatusConfirmed, StatusRescheduled, true},
		{"confirmed to pending cancellation", StatusConfirmed, StatusPendingCancellation, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to pending", StatusConfirmed, StatusPending, false},
		{"rescheduled to completed", StatusRescheduled, StatusCompleted, true},
		{"rescheduled to confirmed", StatusRescheduled, StatusConfirmed, false},
		{"pending cancellation to cancelled", StatusPendingCancellation, StatusCancelled, true},
		{"pending cancellation to completed", StatusPendingCancellation, StatusCompleted, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"no-op transition rejected", StatusConfirmed, StatusConfirmed, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(KindBooking, tc.from, tc.to))
		})
	}
}

func TestCanTransition_PublicEntryUsesReserved(t *testing.T) {
	assert.True(t, CanTransition(KindPublicEntry, StatusPending, StatusReserved))
	assert.False(t, CanTransition(KindPublicEntry, StatusPending, StatusConfirmed))
	assert.True(t, CanTransition(KindPublicEntry, StatusReserved, StatusRescheduled))
	assert.False(t, CanTransition(KindPublicEntry, StatusReserved, StatusReserved))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.False(t, IsTerminal(StatusPendingCancellation))
	assert.False(t, IsTerminal(StatusConfirmed))
}

func TestDerivePaymentStatus(t *testing.T) {
	assert.Equal(t, PayUnpaid, DerivePaymentStatus(decimal.Zero, decimal.NewFromInt(500)))
	assert.Equal(t, PayPartiallyPaid, DerivePaymentStatus(decimal.NewFromInt(200), decimal.NewFromInt(300)))
	assert.Equal(t, PayFullyPaid, DerivePaymentStatus(decimal.NewFromInt(500), decimal.Zero))
}

func TestOppositeMode(t *testing.T) {
	assert.Equal(t, NightTime, OppositeMode(DayTime))
	assert.Equal(t, DayTime, OppositeMode(NightTime))
	assert.Equal(t, WholeDay, OppositeMode(WholeDay))
}
