package dto

import (
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IssueRefundRequest defines the data needed to issue a refund against a
// reservation. GCASH refunds require reference and image URL; CASH refunds
// must carry neither.
type IssueRefundRequest struct {
	Method         domain.PaymentMethod  `json:"method" binding:"required,oneof=CASH GCASH"`
	Reason         string                `json:"reason" binding:"required"`
	CancelCategory domain.CancelCategory `json:"cancelCategory" binding:"required,oneof=NATURAL_DISASTER OTHERS MAINTENANCE HOLIDAY INTERNAL_USE"`
	CancelReason   string                `json:"cancelReason"`
	GcashReference string                `json:"gcashReference"`
	GcashImageURL  string                `json:"gcashImageURL"`
	Remarks        string                `json:"remarks"`
}

// UpdateRefundRequest defines the fields allowed for updating a refund.
type UpdateRefundRequest struct {
	Status       *domain.RefundStatus `json:"status" binding:"omitempty,oneof=PENDING COMPLETED FAILED"`
	Remarks      *string              `json:"remarks"`
	Acknowledged *bool                `json:"acknowledged"`
}

// RefundPaymentResponse is one allocation row of a refund.
type RefundPaymentResponse struct {
	PaymentID      int64           `json:"paymentID"`
	AmountRefunded decimal.Decimal `json:"amountRefunded"`
}

// RefundResponse defines the data returned for a refund.
type RefundResponse struct {
	RefundID       int64                   `json:"refundID"`
	Reservation    domain.ReservationRef   `json:"reservation"`
	RefundAmount   decimal.Decimal         `json:"refundAmount"`
	Status         domain.RefundStatus     `json:"status"`
	Method         domain.PaymentMethod    `json:"method"`
	Reason         string                  `json:"reason"`
	GcashReference string                  `json:"gcashReference,omitempty"`
	GcashImageURL  string                  `json:"gcashImageURL,omitempty"`
	Remarks        string                  `json:"remarks,omitempty"`
	Acknowledged   bool                    `json:"acknowledged"`
	Allocations    []RefundPaymentResponse `json:"allocations,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
	LastUpdatedAt  time.Time               `json:"lastUpdatedAt"`
}

// ToRefundResponse converts a domain.Refund to a RefundResponse DTO.
func ToRefundResponse(r *domain.Refund, allocations []domain.RefundPayment) RefundResponse {
	resp := RefundResponse{
		RefundID:       r.RefundID,
		Reservation:    r.Reservation,
		RefundAmount:   r.RefundAmount,
		Status:         r.Status,
		Method:         r.Method,
		Reason:         r.Reason,
		GcashReference: r.GcashReference,
		GcashImageURL:  r.GcashImageURL,
		Remarks:        r.Remarks,
		Acknowledged:   r.Acknowledged,
		CreatedAt:      r.CreatedAt,
		LastUpdatedAt:  r.LastUpdatedAt,
	}
	for _, a := range allocations {
		resp.Allocations = append(resp.Allocations, RefundPaymentResponse{
			PaymentID:      a.PaymentID,
			AmountRefunded: a.AmountRefunded,
		})
	}
	return resp
}

// ToListRefundResponse converts domain refunds to response DTOs without
// allocation detail.
func ToListRefundResponse(refunds []domain.Refund) []RefundResponse {
	res := make([]RefundResponse, len(refunds))
	for i := range refunds {
		res[i] = ToRefundResponse(&refunds[i], nil)
	}
	return res
}
