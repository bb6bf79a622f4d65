package models

import "github.com/shopspring/decimal"

// Refund is the database row model for the refunds table. Exactly one of
// BookingID or PublicEntryID is non-null.
type Refund struct {
	RefundID       int64           `db:"refund_id"`
	BookingID      *int64          `db:"booking_id"`      // Nullable
	PublicEntryID  *int64          `db:"public_entry_id"` // Nullable
	RefundAmount   decimal.Decimal `db:"refund_amount"`
	Status         string          `db:"status"`
	Method         string          `db:"method"`
	Reason         string          `db:"reason"`
	GcashReference *string         `db:"gcash_reference"` // Nullable
	GcashImageURL  *string         `db:"gcash_image_url"` // Nullable
	Remarks        *string         `db:"remarks"`         // Nullable
	Acknowledged   bool            `db:"acknowledged"`
	AuditFields
}

// RefundPayment is the database row model for the refund_payments join table.
type RefundPayment struct {
	RefundID       int64           `db:"refund_id"`
	PaymentID      int64           `db:"payment_id"`
	AmountRefunded decimal.Decimal `db:"amount_refunded"`
}
