package services

import (
	"context"
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/aquaverde/resort_backend/internal/dto"
)

// ConflictExclusions identifies the reservation under update so the conflict
// checker does not report it as colliding with itself.
type ConflictExclusions struct {
	BookingID     *int64
	PublicEntryID *int64
}

// ConflictCheckerSvc decides whether a candidate date and mode collide with a
// blackout date or an existing non-terminal reservation.
type ConflictCheckerSvc interface {
	// CheckConflicts returns nil when the slot is free, or an error wrapping
	// apperrors.ErrConflict describing the collision.
	CheckConflicts(ctx context.Context, date time.Time, mode domain.TimeMode, exclude ConflictExclusions) error
}

// BookingSvcFacade exposes the booking lifecycle operations.
type BookingSvcFacade interface {
	CreateBooking(ctx context.Context, req dto.CreateBookingRequest, userID string) (*domain.Booking, error)
	GetBookingByID(ctx context.Context, bookingID int64) (*domain.Booking, error)
	ListBookings(ctx context.Context, limit int, nextToken *string) (*dto.ListBookingsResponse, error)
	UpdateBooking(ctx context.Context, bookingID int64, req dto.UpdateBookingRequest, userID string) (*domain.Booking, error)
	SetBookingStatus(ctx context.Context, bookingID int64, req dto.SetReservationStatusRequest, userID string) (*domain.Booking, error)

	// ForfeitExpiredBookings cancels confirmed or rescheduled bookings whose
	// check-in date passed the grace window, keeping any money paid. Returns
	// the number of bookings forfeited.
	ForfeitExpiredBookings(ctx context.Context, grace time.Duration) (int, error)
}

// PublicEntrySvcFacade exposes the public (day-use) entry lifecycle operations.
type PublicEntrySvcFacade interface {
	CreatePublicEntry(ctx context.Context, req dto.CreatePublicEntryRequest, userID string) (*domain.PublicEntry, error)
	GetPublicEntryByID(ctx context.Context, publicEntryID int64) (*domain.PublicEntry, error)
	ListPublicEntries(ctx context.Context, limit int, nextToken *string) (*dto.ListPublicEntriesResponse, error)
	UpdatePublicEntry(ctx context.Context, publicEntryID int64, req dto.UpdatePublicEntryRequest, userID string) (*domain.PublicEntry, error)
	SetPublicEntryStatus(ctx context.Context, publicEntryID int64, req dto.SetReservationStatusRequest, userID string) (*domain.PublicEntry, error)
}
