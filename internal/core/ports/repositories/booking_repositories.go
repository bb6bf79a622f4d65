package repositories

import (
	"context"
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
)

// BookingReader defines read operations for booking data.
type BookingReader interface {
	// FindBookingByID retrieves a specific booking by its identifier.
	FindBookingByID(ctx context.Context, bookingID int64) (*domain.Booking, error)

	// ListBookings retrieves a paginated list of bookings using token-based
	// pagination ordered by check-in date.
	ListBookings(ctx context.Context, limit int, nextToken *string) ([]domain.Booking, *string, error)

	// FindActiveBookingsByDate retrieves bookings on the given calendar date
	// whose status is neither cancelled nor completed. The optional excludeID
	// omits the booking under update from the result.
	FindActiveBookingsByDate(ctx context.Context, date time.Time, excludeID *int64) ([]domain.Booking, error)

	// FindExpiredBookings retrieves confirmed or rescheduled bookings whose
	// check-in date falls before the cutoff.
	FindExpiredBookings(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
}

// BookingWriter defines write operations for booking data. Each method owns
// one database transaction covering the row write and its audit entry.
type BookingWriter interface {
	// SaveBooking inserts a new booking plus its audit entry and returns the
	// assigned identifier.
	SaveBooking(ctx context.Context, booking domain.Booking, audit domain.AuditLog) (int64, error)

	// UpdateBooking persists all mutable fields of a booking plus its audit
	// entry.
	UpdateBooking(ctx context.Context, booking domain.Booking, audit domain.AuditLog) error
}

// BookingRepositoryFacade combines all booking repository interfaces.
type BookingRepositoryFacade interface {
	BookingReader
	BookingWriter
}
