package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PublicEntry is a day-use admission, priced per adult/kid head count from the
// active rate table. A public entry occupies the whole facility for its date
// regardless of mode.
type PublicEntry struct {
	PublicEntryID    int64             `json:"publicEntryID"`
	GuestName        string            `json:"guestName"`
	ContactNumber    string            `json:"contactNumber"`
	Email            string            `json:"email"`
	EntryDate        time.Time         `json:"entryDate"`
	Mode             TimeMode          `json:"mode"` // DayTime or NightTime only
	AdultCount       int               `json:"adultCount"`
	KidCount         int               `json:"kidCount"`
	AdultRateID      int64             `json:"adultRateID"`
	KidRateID        int64             `json:"kidRateID"`
	DiscountPercent  decimal.Decimal   `json:"discountPercent"`
	Status           ReservationStatus `json:"status"`
	TotalAmount      decimal.Decimal   `json:"totalAmount"`
	AmountPaid       decimal.Decimal   `json:"amountPaid"`
	RemainingBalance decimal.Decimal   `json:"remainingBalance"`
	PaymentStatus    PaymentStatus     `json:"paymentStatus"`
	CancelCategory   *CancelCategory   `json:"cancelCategory,omitempty"`
	CancelReason     string            `json:"cancelReason,omitempty"`
	AuditFields
}

// Ref returns the tagged reservation reference for this public entry.
func (p *PublicEntry) Ref() ReservationRef {
	return PublicEntryRef(p.PublicEntryID)
}
