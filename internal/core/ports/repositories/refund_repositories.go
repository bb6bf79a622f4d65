package repositories

import (
	"context"
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
)

// RefundReader defines read operations for refund data.
type RefundReader interface {
	// FindRefundByID retrieves a specific refund by its identifier.
	FindRefundByID(ctx context.Context, refundID int64) (*domain.Refund, error)

	// FindCompletedRefundByReservation retrieves the completed refund for a
	// reservation, or apperrors.ErrNotFound when none exists.
	FindCompletedRefundByReservation(ctx context.Context, ref domain.ReservationRef) (*domain.Refund, error)

	// ListRefunds retrieves all refunds, newest first.
	ListRefunds(ctx context.Context) ([]domain.Refund, error)

	// FindRefundPaymentsByRefundID retrieves the allocation rows of a refund.
	FindRefundPaymentsByRefundID(ctx context.Context, refundID int64) ([]domain.RefundPayment, error)

	// FindStaleUnacknowledgedRefunds retrieves completed, unacknowledged
	// refunds last updated before the cutoff.
	FindStaleUnacknowledgedRefunds(ctx context.Context, cutoff time.Time) ([]domain.Refund, error)
}

// RefundWriter defines write operations for refund data. SaveRefund and
// UpdateRefund are the ledger coordinator's composite writes: the refund row,
// its allocation rows, the parent reservation's ledger update, and the audit
// entry commit atomically or not at all.
type RefundWriter interface {
	// SaveRefund inserts a refund with its per-payment allocations, applies
	// the ledger update to the parent reservation, writes the audit entry, and
	// returns the refund identifier.
	SaveRefund(ctx context.Context, refund domain.Refund, allocations []domain.RefundPayment, ledger domain.LedgerUpdate, audit domain.AuditLog) (int64, error)

	// UpdateRefund persists refund field changes and, when ledger is non-nil,
	// applies the reservation adjustment in the same transaction.
	UpdateRefund(ctx context.Context, refund domain.Refund, ledger *domain.LedgerUpdate, audit domain.AuditLog) error
}

// RefundRepositoryFacade combines all refund repository interfaces.
type RefundRepositoryFacade interface {
	RefundReader
	RefundWriter
}
