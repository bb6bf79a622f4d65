package dto

import (
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest defines the data needed to record an installment
// against a reservation. The reservation reference comes from the route.
type RecordPaymentRequest struct {
	Amount  decimal.Decimal      `json:"amount" binding:"required"`
	Method  domain.PaymentMethod `json:"method" binding:"required,oneof=CASH GCASH"`
	Remarks string               `json:"remarks"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID     int64                      `json:"paymentID"`
	Reservation   domain.ReservationRef      `json:"reservation"`
	NetPaidAmount decimal.Decimal            `json:"netPaidAmount"`
	Method        domain.PaymentMethod       `json:"method"`
	Status        domain.PaymentRecordStatus `json:"status"`
	Remarks       string                     `json:"remarks,omitempty"`
	CreatedAt     time.Time                  `json:"createdAt"`
}

// ToPaymentResponse converts a domain.Payment to a PaymentResponse DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		Reservation:   p.Reservation,
		NetPaidAmount: p.NetPaidAmount,
		Method:        p.Method,
		Status:        p.Status,
		Remarks:       p.Remarks,
		CreatedAt:     p.CreatedAt,
	}
}

// ToListPaymentResponse converts domain payments to response DTOs.
func ToListPaymentResponse(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i := range payments {
		res[i] = ToPaymentResponse(&payments[i])
	}
	return res
}
