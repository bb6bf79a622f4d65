package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is the database row model for the bookings table.
type Booking struct {
	BookingID        int64           `db:"booking_id"`
	GuestName        string          `db:"guest_name"`
	ContactNumber    string          `db:"contact_number"`
	Email            string          `db:"email"`
	CheckInDate      time.Time       `db:"check_in_date"`
	CheckOutDate     time.Time       `db:"check_out_date"`
	Mode             string          `db:"mode"`
	Status           string          `db:"status"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	AmountPaid       decimal.Decimal `db:"amount_paid"`
	RemainingBalance decimal.Decimal `db:"remaining_balance"`
	PaymentStatus    string          `db:"payment_status"`
	CancelCategory   *string         `db:"cancel_category"` // Nullable
	CancelReason     *string         `db:"cancel_reason"`   // Nullable
	AuditFields
}
