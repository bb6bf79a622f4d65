package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/aquaverde/resort_backend/internal/core/domain"
	portsrepo "github.com/aquaverde/resort_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// refundPlanner builds the refund row and its per-payment allocations for a
// refund-triggering cancellation. Booking, public entry, and refund services
// all route through it so the retention policy and the one-completed-refund
// rule live in one place.
type refundPlanner struct {
	paymentRepo portsrepo.PaymentReader
	refundRepo  portsrepo.RefundReader
	retention   decimal.Decimal
}

func newRefundPlanner(paymentRepo portsrepo.PaymentReader, refundRepo portsrepo.RefundReader, retention decimal.Decimal) *refundPlanner {
	if retention.LessThanOrEqual(decimal.Zero) || retention.GreaterThan(decimal.NewFromInt(1)) {
		retention = domain.DefaultRefundRetention
	}
	return &refundPlanner{
		paymentRepo: paymentRepo,
		refundRepo:  refundRepo,
		retention:   retention,
	}
}

// refundPlan is the prepared, not yet persisted refund.
type refundPlan struct {
	Refund      domain.Refund
	Allocations []domain.RefundPayment
	Amount      decimal.Decimal
}

// planRefund aggregates the reservation's valid payments and applies the
// retention policy. Fails when no valid payments exist, when a completed
// refund already exists, or when the method fields are inconsistent.
func (p *refundPlanner) planRefund(ctx context.Context, ref domain.ReservationRef, method domain.PaymentMethod, gcashReference, gcashImageURL, reason, remarks, userID string) (*refundPlan, error) {
	if err := validateRefundMethodFields(method, gcashReference, gcashImageURL); err != nil {
		return nil, err
	}

	payments, err := p.paymentRepo.FindValidPaymentsByReservation(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments for %s: %w", ref, err)
	}
	if len(payments) == 0 {
		return nil, fmt.Errorf("%w: %s has no valid payments to refund", apperrors.ErrNoValidPayments, ref)
	}

	existing, err := p.refundRepo.FindCompletedRefundByReservation(ctx, ref)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing refund for %s: %w", ref, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s already has completed refund %d", apperrors.ErrDuplicateRefund, ref, existing.RefundID)
	}

	totalPaid := decimal.Zero
	for _, pay := range payments {
		totalPaid = totalPaid.Add(pay.NetPaidAmount)
	}
	refundAmount := totalPaid.Mul(p.retention).Round(2)

	// Allocate proportionally per payment; the last allocation absorbs any
	// rounding residue so the allocations always sum to the refund amount.
	// Intermediate shares are capped at the unallocated remainder, otherwise
	// several sub-cent payments rounding up could push the last share negative.
	allocations := make([]domain.RefundPayment, len(payments))
	allocated := decimal.Zero
	for i, pay := range payments {
		var share decimal.Decimal
		if i == len(payments)-1 {
			share = refundAmount.Sub(allocated)
		} else {
			share = pay.NetPaidAmount.Mul(p.retention).Round(2)
			if unallocated := refundAmount.Sub(allocated); share.GreaterThan(unallocated) {
				share = unallocated
			}
			allocated = allocated.Add(share)
		}
		allocations[i] = domain.RefundPayment{
			PaymentID:      pay.PaymentID,
			AmountRefunded: share,
		}
	}

	now := time.Now().UTC()
	refund := domain.Refund{
		Reservation:    ref,
		RefundAmount:   refundAmount,
		Status:         domain.RefundCompleted,
		Method:         method,
		Reason:         reason,
		GcashReference: gcashReference,
		GcashImageURL:  gcashImageURL,
		Remarks:        remarks,
		Acknowledged:   false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	return &refundPlan{Refund: refund, Allocations: allocations, Amount: refundAmount}, nil
}

// validateRefundMethodFields enforces the per-method field rules: GCASH needs
// the transfer reference and proof image, CASH must carry neither.
func validateRefundMethodFields(method domain.PaymentMethod, gcashReference, gcashImageURL string) error {
	switch method {
	case domain.MethodGcash:
		if strings.TrimSpace(gcashReference) == "" || strings.TrimSpace(gcashImageURL) == "" {
			return fmt.Errorf("%w: GCASH refunds require gcashReference and gcashImageURL", apperrors.ErrValidation)
		}
	case domain.MethodCash:
		if gcashReference != "" || gcashImageURL != "" {
			return fmt.Errorf("%w: CASH refunds must not carry GCASH fields", apperrors.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown refund method %q", apperrors.ErrValidation, method)
	}
	return nil
}

// refundLedger builds the reservation adjustment applied atomically with a
// refund write: the refunded amount moves from paid back to outstanding and
// the reservation is finalized as cancelled.
func refundLedger(ref domain.ReservationRef, amountPaid, remainingBalance, refundAmount decimal.Decimal, category *domain.CancelCategory, cancelReason, userID string) domain.LedgerUpdate {
	newPaid := amountPaid.Sub(refundAmount)
	newRemaining := remainingBalance.Add(refundAmount)
	return domain.LedgerUpdate{
		Ref:              ref,
		Status:           domain.StatusCancelled,
		PaymentStatus:    domain.DerivePaymentStatus(newPaid, newRemaining),
		AmountPaid:       newPaid,
		RemainingBalance: newRemaining,
		CancelCategory:   category,
		CancelReason:     cancelReason,
		UpdatedBy:        userID,
	}
}

// validateCancelMetadata enforces the cancellation rules shared by bookings
// and public entries: a category is mandatory and OTHERS needs a free-text
// reason.
func validateCancelMetadata(category *domain.CancelCategory, reason string) error {
	if category == nil {
		return fmt.Errorf("%w: cancellation requires a cancel category", apperrors.ErrValidation)
	}
	if *category == domain.CancelOthers && strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: cancel category OTHERS requires a reason", apperrors.ErrValidation)
	}
	return nil
}
