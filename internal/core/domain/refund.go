package domain

import "github.com/shopspring/decimal"

// RefundStatus is the state of a refund.
type RefundStatus string

const (
	RefundPending   RefundStatus = "PENDING"
	RefundCompleted RefundStatus = "COMPLETED"
	RefundFailed    RefundStatus = "FAILED"
)

// DefaultRefundRetention is the fraction of the paid total returned on a
// refund-triggering cancellation. The remaining half is retained by the venue.
// Overridable via REFUND_RETENTION_RATE configuration.
var DefaultRefundRetention = decimal.NewFromFloat(0.5)

// Refund reverses part of a reservation's paid total. At most one COMPLETED
// refund may exist per reservation.
type Refund struct {
	RefundID       int64           `json:"refundID"`
	Reservation    ReservationRef  `json:"reservation"`
	RefundAmount   decimal.Decimal `json:"refundAmount"`
	Status         RefundStatus    `json:"status"`
	Method         PaymentMethod   `json:"method"`
	Reason         string          `json:"reason"`
	GcashReference string          `json:"gcashReference,omitempty"`
	GcashImageURL  string          `json:"gcashImageURL,omitempty"`
	Remarks        string          `json:"remarks,omitempty"`
	Acknowledged   bool            `json:"acknowledged"`
	AuditFields
}

// RefundPayment records how a refund's total was allocated across the
// payments it offsets, one row per contributing payment.
type RefundPayment struct {
	RefundID       int64           `json:"refundID"`
	PaymentID      int64           `json:"paymentID"`
	AmountRefunded decimal.Decimal `json:"amountRefunded"`
}

// LedgerUpdate carries the balance and status adjustment applied to the parent
// reservation inside the same transaction as a payment or refund write.
type LedgerUpdate struct {
	Ref              ReservationRef
	Status           ReservationStatus
	PaymentStatus    PaymentStatus
	AmountPaid       decimal.Decimal
	RemainingBalance decimal.Decimal
	CancelCategory   *CancelCategory
	CancelReason     string
	UpdatedBy        string
}
