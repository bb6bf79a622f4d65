package repositories

import (
	"context"

	"github.com/aquaverde/resort_backend/internal/core/domain"
)

// PaymentReader defines read operations for payment data.
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by its identifier.
	FindPaymentByID(ctx context.Context, paymentID int64) (*domain.Payment, error)

	// FindValidPaymentsByReservation retrieves every VALID payment for a
	// reservation, oldest first.
	FindValidPaymentsByReservation(ctx context.Context, ref domain.ReservationRef) ([]domain.Payment, error)

	// ListPaymentsByReservation retrieves every payment for a reservation
	// regardless of status, oldest first.
	ListPaymentsByReservation(ctx context.Context, ref domain.ReservationRef) ([]domain.Payment, error)
}

// PaymentWriter defines write operations for payment data. Both methods apply
// the parent reservation's ledger update inside the same transaction as the
// payment row write and its audit entry.
type PaymentWriter interface {
	// SavePayment inserts a payment, applies the ledger update to the parent
	// reservation, writes the audit entry, and returns the payment identifier.
	SavePayment(ctx context.Context, payment domain.Payment, ledger domain.LedgerUpdate, audit domain.AuditLog) (int64, error)

	// VoidPayment marks a payment voided and applies the reversing ledger
	// update to the parent reservation.
	VoidPayment(ctx context.Context, payment domain.Payment, ledger domain.LedgerUpdate, audit domain.AuditLog) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
