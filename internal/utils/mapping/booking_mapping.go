package mapping

import (
	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/aquaverde/resort_backend/internal/models"
)

// ToModelBooking converts a domain Booking to a model Booking.
func ToModelBooking(d domain.Booking) models.Booking {
	return models.Booking{
		BookingID:        d.BookingID,
		GuestName:        d.GuestName,
		ContactNumber:    d.ContactNumber,
		Email:            d.Email,
		CheckInDate:      d.CheckInDate,
		CheckOutDate:     d.CheckOutDate,
		Mode:             string(d.Mode),
		Status:           string(d.Status),
		TotalAmount:      d.TotalAmount,
		AmountPaid:       d.AmountPaid,
		RemainingBalance: d.RemainingBalance,
		PaymentStatus:    string(d.PaymentStatus),
		CancelCategory:   nullableCancelCategory(d.CancelCategory),
		CancelReason:     nullableString(d.CancelReason),
		AuditFields:      toModelAudit(d.AuditFields),
	}
}

// ToDomainBooking converts a model Booking to a domain Booking.
func ToDomainBooking(m models.Booking) domain.Booking {
	return domain.Booking{
		BookingID:        m.BookingID,
		GuestName:        m.GuestName,
		ContactNumber:    m.ContactNumber,
		Email:            m.Email,
		CheckInDate:      m.CheckInDate,
		CheckOutDate:     m.CheckOutDate,
		Mode:             domain.TimeMode(m.Mode),
		Status:           domain.ReservationStatus(m.Status),
		TotalAmount:      m.TotalAmount,
		AmountPaid:       m.AmountPaid,
		RemainingBalance: m.RemainingBalance,
		PaymentStatus:    domain.PaymentStatus(m.PaymentStatus),
		CancelCategory:   toDomainCancelCategory(m.CancelCategory),
		CancelReason:     stringOrEmpty(m.CancelReason),
		AuditFields:      toDomainAudit(m.AuditFields),
	}
}

// ToDomainBookingSlice converts a slice of model Bookings to domain Bookings.
func ToDomainBookingSlice(ms []models.Booking) []domain.Booking {
	ds := make([]domain.Booking, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBooking(m)
	}
	return ds
}
