package services

import (
	"context"
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/aquaverde/resort_backend/internal/dto"
)

// RefundSvcFacade is the refund/payment ledger coordinator's public surface.
type RefundSvcFacade interface {
	// IssueRefund aggregates the reservation's valid payments, applies the
	// retention policy, and writes the refund, its allocations, and the
	// reservation's ledger adjustment atomically.
	IssueRefund(ctx context.Context, ref domain.ReservationRef, req dto.IssueRefundRequest, userID string) (*domain.Refund, error)

	// UpdateRefund persists refund changes. Completing a non-completed refund
	// re-applies the reservation balance adjustment in the same transaction.
	UpdateRefund(ctx context.Context, refundID int64, req dto.UpdateRefundRequest, userID string) (*domain.Refund, error)

	GetRefundByID(ctx context.Context, refundID int64) (*domain.Refund, []domain.RefundPayment, error)
	ListRefunds(ctx context.Context) ([]domain.Refund, error)

	// AcknowledgeStaleRefunds marks completed refunds that stayed
	// unacknowledged past the timeout. Returns the number acknowledged.
	AcknowledgeStaleRefunds(ctx context.Context, olderThan time.Duration) (int, error)
}

// PaymentSvcFacade exposes installment recording against reservations.
type PaymentSvcFacade interface {
	// RecordPayment appends a valid payment and applies the ledger adjustment
	// to the parent reservation atomically.
	RecordPayment(ctx context.Context, ref domain.ReservationRef, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error)

	// VoidPayment voids a payment and reverses its ledger effect.
	VoidPayment(ctx context.Context, paymentID int64, userID string) error

	ListPaymentsForReservation(ctx context.Context, ref domain.ReservationRef) ([]domain.Payment, error)
}

// BlockedDateSvcFacade exposes blackout date administration feeding the
// conflict checker.
type BlockedDateSvcFacade interface {
	CreateBlockedDate(ctx context.Context, req dto.CreateBlockedDateRequest, userID string) (*domain.BlockedDate, error)
	CancelBlockedDate(ctx context.Context, blockedDateID int64, userID string) error
	ListBlockedDates(ctx context.Context) ([]domain.BlockedDate, error)
}
