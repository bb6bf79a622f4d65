package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/aquaverde/resort_backend/internal/core/domain"
	portsrepo "github.com/aquaverde/resort_backend/internal/core/ports/repositories"
	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/aquaverde/resort_backend/internal/dto"
	"github.com/aquaverde/resort_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// paymentService records installments against reservations. Every write
// adjusts the parent reservation's balances in the same transaction so
// amountPaid + remainingBalance == totalAmount holds after every commit.
type paymentService struct {
	paymentRepo    portsrepo.PaymentRepositoryFacade
	permissionRepo portsrepo.PermissionRepositoryFacade
	loader         *reservationLoader
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	bookingRepo portsrepo.BookingReader,
	publicEntryRepo portsrepo.PublicEntryReader,
	permissionRepo portsrepo.PermissionRepositoryFacade,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:    paymentRepo,
		permissionRepo: permissionRepo,
		loader:         &reservationLoader{bookingRepo: bookingRepo, publicEntryRepo: publicEntryRepo},
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment implements portssvc.PaymentSvcFacade.
func (s *paymentService) RecordPayment(ctx context.Context, ref domain.ReservationRef, req dto.RecordPaymentRequest, userID string) (*domain.Payment, error) {
	if err := checkPermission(ctx, s.permissionRepo, userID, tablePayments, actionCreate); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	res, err := s.loader.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if domain.IsTerminal(res.Status) {
		return nil, fmt.Errorf("%w: cannot record a payment against a %s reservation", apperrors.ErrValidation, res.Status)
	}
	if req.Amount.GreaterThan(res.RemainingBalance) {
		return nil, fmt.Errorf("%w: payment %s exceeds remaining balance %s", apperrors.ErrValidation, req.Amount, res.RemainingBalance)
	}

	newPaid := res.AmountPaid.Add(req.Amount)
	newRemaining := res.RemainingBalance.Sub(req.Amount)

	now := time.Now().UTC()
	payment := domain.Payment{
		Reservation:   ref,
		NetPaidAmount: req.Amount,
		Method:        req.Method,
		Status:        domain.PaymentValid,
		Remarks:       req.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	ledger := domain.LedgerUpdate{
		Ref:              ref,
		Status:           res.Status,
		PaymentStatus:    domain.DerivePaymentStatus(newPaid, newRemaining),
		AmountPaid:       newPaid,
		RemainingBalance: newRemaining,
		UpdatedBy:        userID,
	}

	audit := newAuditLog(userID, "CREATE", tablePayments, "", payment, "")
	paymentID, err := s.paymentRepo.SavePayment(ctx, payment, ledger, audit)
	if err != nil {
		return nil, fmt.Errorf("failed to save payment for %s: %w", ref, err)
	}
	payment.PaymentID = paymentID

	middleware.GetLoggerFromCtx(ctx).Info("Payment recorded",
		slog.Int64("payment_id", paymentID),
		slog.String("reservation", ref.String()),
		slog.String("amount", req.Amount.String()),
		slog.String("payment_status", string(ledger.PaymentStatus)))
	return &payment, nil
}

// VoidPayment implements portssvc.PaymentSvcFacade. Voiding reverses the
// payment's ledger effect; it is only allowed while the reservation is still
// open.
func (s *paymentService) VoidPayment(ctx context.Context, paymentID int64, userID string) error {
	if err := checkPermission(ctx, s.permissionRepo, userID, tablePayments, actionUpdate); err != nil {
		return err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.Status == domain.PaymentVoided {
		return fmt.Errorf("%w: payment %d is already voided", apperrors.ErrValidation, paymentID)
	}

	res, err := s.loader.load(ctx, payment.Reservation)
	if err != nil {
		return err
	}
	if domain.IsTerminal(res.Status) {
		return fmt.Errorf("%w: cannot void a payment on a %s reservation", apperrors.ErrValidation, res.Status)
	}

	newPaid := res.AmountPaid.Sub(payment.NetPaidAmount)
	if newPaid.IsNegative() {
		return fmt.Errorf("%w: voiding payment %d would make the paid amount negative", apperrors.ErrValidation, paymentID)
	}
	newRemaining := res.RemainingBalance.Add(payment.NetPaidAmount)

	payment.Status = domain.PaymentVoided
	payment.LastUpdatedAt = time.Now().UTC()
	payment.LastUpdatedBy = userID

	ledger := domain.LedgerUpdate{
		Ref:              payment.Reservation,
		Status:           res.Status,
		PaymentStatus:    domain.DerivePaymentStatus(newPaid, newRemaining),
		AmountPaid:       newPaid,
		RemainingBalance: newRemaining,
		UpdatedBy:        userID,
	}

	audit := newAuditLog(userID, "VOID", tablePayments, strconv.FormatInt(paymentID, 10), payment, "")
	if err := s.paymentRepo.VoidPayment(ctx, *payment, ledger, audit); err != nil {
		return fmt.Errorf("failed to void payment %d: %w", paymentID, err)
	}
	return nil
}

func (s *paymentService) ListPaymentsForReservation(ctx context.Context, ref domain.ReservationRef) ([]domain.Payment, error) {
	if _, err := s.loader.load(ctx, ref); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListPaymentsByReservation(ctx, ref)
}
