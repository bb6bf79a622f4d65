package services

import (
	"context"
	"fmt"

	"github.com/aquaverde/resort_backend/internal/core/domain"
	portsrepo "github.com/aquaverde/resort_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// reservationLoader resolves a tagged reservation reference to the ledger
// fields shared by bookings and public entries.
type reservationLoader struct {
	bookingRepo     portsrepo.BookingReader
	publicEntryRepo portsrepo.PublicEntryReader
}

// reservationLedger is the kind-independent view of a reservation's balances.
type reservationLedger struct {
	Ref              domain.ReservationRef
	Status           domain.ReservationStatus
	TotalAmount      decimal.Decimal
	AmountPaid       decimal.Decimal
	RemainingBalance decimal.Decimal
	CancelCategory   *domain.CancelCategory
	CancelReason     string
}

func (l *reservationLoader) load(ctx context.Context, ref domain.ReservationRef) (*reservationLedger, error) {
	switch ref.Kind {
	case domain.KindBooking:
		b, err := l.bookingRepo.FindBookingByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return &reservationLedger{
			Ref:              ref,
			Status:           b.Status,
			TotalAmount:      b.TotalAmount,
			AmountPaid:       b.AmountPaid,
			RemainingBalance: b.RemainingBalance,
			CancelCategory:   b.CancelCategory,
			CancelReason:     b.CancelReason,
		}, nil
	case domain.KindPublicEntry:
		p, err := l.publicEntryRepo.FindPublicEntryByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		return &reservationLedger{
			Ref:              ref,
			Status:           p.Status,
			TotalAmount:      p.TotalAmount,
			AmountPaid:       p.AmountPaid,
			RemainingBalance: p.RemainingBalance,
			CancelCategory:   p.CancelCategory,
			CancelReason:     p.CancelReason,
		}, nil
	default:
		return nil, fmt.Errorf("unknown reservation kind %q", ref.Kind)
	}
}
