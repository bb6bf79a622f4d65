package models

import "github.com/shopspring/decimal"

// Payment is the database row model for the payments table. Exactly one of
// BookingID or PublicEntryID is non-null; the mapping layer converts the pair
// to and from the tagged domain.ReservationRef.
type Payment struct {
	PaymentID     int64           `db:"payment_id"`
	BookingID     *int64          `db:"booking_id"`      // Nullable
	PublicEntryID *int64          `db:"public_entry_id"` // Nullable
	NetPaidAmount decimal.Decimal `db:"net_paid_amount"`
	Method        string          `db:"method"`
	Status        string          `db:"status"`
	Remarks       *string         `db:"remarks"` // Nullable
	AuditFields
}
