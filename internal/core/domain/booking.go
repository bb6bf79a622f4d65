package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is a private event reservation of the facility. The monetary triple
// must satisfy AmountPaid + RemainingBalance == TotalAmount after every
// committed mutation.
type Booking struct {
	BookingID        int64             `json:"bookingID"`
	GuestName        string            `json:"guestName"`
	ContactNumber    string            `json:"contactNumber"`
	Email            string            `json:"email"`
	CheckInDate      time.Time         `json:"checkInDate"`
	CheckOutDate     time.Time         `json:"checkOutDate"`
	Mode             TimeMode          `json:"mode"`
	Status           ReservationStatus `json:"status"`
	TotalAmount      decimal.Decimal   `json:"totalAmount"`
	AmountPaid       decimal.Decimal   `json:"amountPaid"`
	RemainingBalance decimal.Decimal   `json:"remainingBalance"`
	PaymentStatus    PaymentStatus     `json:"paymentStatus"`
	CancelCategory   *CancelCategory   `json:"cancelCategory,omitempty"`
	CancelReason     string            `json:"cancelReason,omitempty"`
	AuditFields
}

// Ref returns the tagged reservation reference for this booking.
func (b *Booking) Ref() ReservationRef {
	return BookingRef(b.BookingID)
}
