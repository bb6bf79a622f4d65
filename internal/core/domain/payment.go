package domain

import "github.com/shopspring/decimal"

// PaymentRecordStatus is the validity state of a single payment row.
type PaymentRecordStatus string

const (
	PaymentValid  PaymentRecordStatus = "VALID"
	PaymentVoided PaymentRecordStatus = "VOIDED"
)

// PaymentMethod is how a payment or refund moves money.
type PaymentMethod string

const (
	MethodCash  PaymentMethod = "CASH"
	MethodGcash PaymentMethod = "GCASH"
)

// Payment is one installment paid against a reservation. A reservation
// accumulates many payments over time; only VALID rows count toward the
// refundable base.
type Payment struct {
	PaymentID     int64               `json:"paymentID"`
	Reservation   ReservationRef      `json:"reservation"`
	NetPaidAmount decimal.Decimal     `json:"netPaidAmount"`
	Method        PaymentMethod       `json:"method"`
	Status        PaymentRecordStatus `json:"status"`
	Remarks       string              `json:"remarks,omitempty"`
	AuditFields
}
