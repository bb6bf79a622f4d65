package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PublicEntry is the database row model for the public_entries table.
type PublicEntry struct {
	PublicEntryID    int64           `db:"public_entry_id"`
	GuestName        string          `db:"guest_name"`
	ContactNumber    string          `db:"contact_number"`
	Email            string          `db:"email"`
	EntryDate        time.Time       `db:"entry_date"`
	Mode             string          `db:"mode"`
	AdultCount       int             `db:"adult_count"`
	KidCount         int             `db:"kid_count"`
	AdultRateID      int64           `db:"adult_rate_id"`
	KidRateID        int64           `db:"kid_rate_id"`
	DiscountPercent  decimal.Decimal `db:"discount_percent"`
	Status           string          `db:"status"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	AmountPaid       decimal.Decimal `db:"amount_paid"`
	RemainingBalance decimal.Decimal `db:"remaining_balance"`
	PaymentStatus    string          `db:"payment_status"`
	CancelCategory   *string         `db:"cancel_category"` // Nullable
	CancelReason     *string         `db:"cancel_reason"`   // Nullable
	AuditFields
}
