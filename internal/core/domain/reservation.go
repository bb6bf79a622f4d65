package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ReservationKind discriminates the two concrete reservation kinds.
type ReservationKind string

const (
	KindBooking     ReservationKind = "BOOKING"
	KindPublicEntry ReservationKind = "PUBLIC_ENTRY"
)

// ReservationRef is a tagged reference to either a Booking or a PublicEntry.
// It replaces the bookingID-xor-publicEntryID nullable pair on Payment and
// Refund rows, so a reference is always exactly one of the two.
type ReservationRef struct {
	Kind ReservationKind `json:"kind"`
	ID   int64           `json:"id"`
}

// BookingRef builds a reference to a booking.
func BookingRef(id int64) ReservationRef {
	return ReservationRef{Kind: KindBooking, ID: id}
}

// PublicEntryRef builds a reference to a public entry.
func PublicEntryRef(id int64) ReservationRef {
	return ReservationRef{Kind: KindPublicEntry, ID: id}
}

func (r ReservationRef) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}

// ReservationStatus is the lifecycle state of a booking or public entry.
// Bookings use Confirmed where public entries use Reserved; the transition
// shape is otherwise identical.
type ReservationStatus string

const (
	StatusPending             ReservationStatus = "PENDING"
	StatusConfirmed           ReservationStatus = "CONFIRMED"
	StatusReserved            ReservationStatus = "RESERVED"
	StatusRescheduled         ReservationStatus = "RESCHEDULED"
	StatusPendingCancellation ReservationStatus = "PENDING_CANCELLATION"
	StatusCancelled           ReservationStatus = "CANCELLED"
	StatusCompleted           ReservationStatus = "COMPLETED"
)

// PaymentStatus summarises how much of a reservation's total has been paid.
type PaymentStatus string

const (
	PayUnpaid        PaymentStatus = "UNPAID"
	PayPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PayFullyPaid     PaymentStatus = "FULLY_PAID"
)

// bookingTransitions is the legal transition table for bookings.
var bookingTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:             {StatusConfirmed, StatusCancelled},
	StatusConfirmed:           {StatusRescheduled, StatusPendingCancellation, StatusCancelled, StatusCompleted},
	StatusRescheduled:         {StatusPendingCancellation, StatusCancelled, StatusCompleted},
	StatusPendingCancellation: {StatusCancelled},
	StatusCancelled:           {},
	StatusCompleted:           {},
}

// publicEntryTransitions mirrors bookingTransitions with Reserved in place of
// Confirmed.
var publicEntryTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:             {StatusReserved, StatusCancelled},
	StatusReserved:            {StatusRescheduled, StatusPendingCancellation, StatusCancelled, StatusCompleted},
	StatusRescheduled:         {StatusPendingCancellation, StatusCancelled, StatusCompleted},
	StatusPendingCancellation: {StatusCancelled},
	StatusCancelled:           {},
	StatusCompleted:           {},
}

// CanTransition reports whether a reservation of the given kind may move from
// one status to another. A no-op transition (from == to) is never legal.
func CanTransition(kind ReservationKind, from, to ReservationStatus) bool {
	table := bookingTransitions
	if kind == KindPublicEntry {
		table = publicEntryTransitions
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(s ReservationStatus) bool {
	return s == StatusCancelled || s == StatusCompleted
}

// DerivePaymentStatus computes the payment status from the paid amount and the
// remaining balance.
func DerivePaymentStatus(amountPaid, remainingBalance decimal.Decimal) PaymentStatus {
	switch {
	case amountPaid.IsZero():
		return PayUnpaid
	case remainingBalance.IsZero():
		return PayFullyPaid
	default:
		return PayPartiallyPaid
	}
}
