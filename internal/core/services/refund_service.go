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

// refundService is the refund side of the ledger coordinator. Issuing a
// refund cancels the reservation and moves the refunded amount from paid back
// to outstanding in one composite repository write.
type refundService struct {
	refundRepo     portsrepo.RefundRepositoryFacade
	permissionRepo portsrepo.PermissionRepositoryFacade
	loader         *reservationLoader
	planner        *refundPlanner
}

// NewRefundService creates a new refund service.
func NewRefundService(
	refundRepo portsrepo.RefundRepositoryFacade,
	paymentRepo portsrepo.PaymentReader,
	bookingRepo portsrepo.BookingReader,
	publicEntryRepo portsrepo.PublicEntryReader,
	permissionRepo portsrepo.PermissionRepositoryFacade,
	retention decimal.Decimal,
) portssvc.RefundSvcFacade {
	return &refundService{
		refundRepo:     refundRepo,
		permissionRepo: permissionRepo,
		loader:         &reservationLoader{bookingRepo: bookingRepo, publicEntryRepo: publicEntryRepo},
		planner:        newRefundPlanner(paymentRepo, refundRepo, retention),
	}
}

var _ portssvc.RefundSvcFacade = (*refundService)(nil)

// IssueRefund implements portssvc.RefundSvcFacade.
func (s *refundService) IssueRefund(ctx context.Context, ref domain.ReservationRef, req dto.IssueRefundRequest, userID string) (*domain.Refund, error) {
	if err := checkPermission(ctx, s.permissionRepo, userID, tableRefunds, actionCreate); err != nil {
		return nil, err
	}

	category := req.CancelCategory
	if err := validateCancelMetadata(&category, req.CancelReason); err != nil {
		return nil, err
	}

	res, err := s.loader.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if res.Status == domain.StatusCompleted {
		return nil, fmt.Errorf("%w: cannot refund a completed reservation", apperrors.ErrValidation)
	}
	if res.Status == domain.StatusCancelled {
		return nil, fmt.Errorf("%w: reservation %s is already cancelled", apperrors.ErrValidation, ref)
	}

	plan, err := s.planner.planRefund(ctx, ref, req.Method, req.GcashReference, req.GcashImageURL, req.Reason, req.Remarks, userID)
	if err != nil {
		return nil, err
	}

	ledger := refundLedger(ref, res.AmountPaid, res.RemainingBalance, plan.Amount, &category, req.CancelReason, userID)
	audit := newAuditLog(userID, "CREATE", tableRefunds, "", plan.Refund, req.Reason)

	refundID, err := s.refundRepo.SaveRefund(ctx, plan.Refund, plan.Allocations, ledger, audit)
	if err != nil {
		return nil, fmt.Errorf("failed to save refund for %s: %w", ref, err)
	}
	plan.Refund.RefundID = refundID

	middleware.GetLoggerFromCtx(ctx).Info("Refund issued",
		slog.Int64("refund_id", refundID),
		slog.String("reservation", ref.String()),
		slog.String("refund_amount", plan.Amount.String()))
	return &plan.Refund, nil
}

// UpdateRefund implements portssvc.RefundSvcFacade. Completing a pending
// refund applies the reservation's ledger adjustment in the same transaction;
// a completed refund's status is immutable.
func (s *refundService) UpdateRefund(ctx context.Context, refundID int64, req dto.UpdateRefundRequest, userID string) (*domain.Refund, error) {
	if err := checkPermission(ctx, s.permissionRepo, userID, tableRefunds, actionUpdate); err != nil {
		return nil, err
	}

	refund, err := s.refundRepo.FindRefundByID(ctx, refundID)
	if err != nil {
		return nil, err
	}

	var ledger *domain.LedgerUpdate
	if req.Status != nil && *req.Status != refund.Status {
		if refund.Status != domain.RefundPending {
			return nil, fmt.Errorf("%w: refund %d is %s and its status cannot change", apperrors.ErrValidation, refundID, refund.Status)
		}
		switch *req.Status {
		case domain.RefundCompleted:
			res, lerr := s.loader.load(ctx, refund.Reservation)
			if lerr != nil {
				return nil, lerr
			}
			l := refundLedger(refund.Reservation, res.AmountPaid, res.RemainingBalance, refund.RefundAmount, res.CancelCategory, res.CancelReason, userID)
			ledger = &l
		case domain.RefundFailed:
			// No ledger effect; the money never moved.
		default:
			return nil, fmt.Errorf("%w: refund %d cannot return to %s", apperrors.ErrValidation, refundID, *req.Status)
		}
		refund.Status = *req.Status
	}
	if req.Remarks != nil {
		refund.Remarks = *req.Remarks
	}
	if req.Acknowledged != nil {
		refund.Acknowledged = *req.Acknowledged
	}

	refund.LastUpdatedAt = time.Now().UTC()
	refund.LastUpdatedBy = userID

	audit := newAuditLog(userID, "UPDATE", tableRefunds, strconv.FormatInt(refundID, 10), refund, "")
	if err := s.refundRepo.UpdateRefund(ctx, *refund, ledger, audit); err != nil {
		return nil, fmt.Errorf("failed to update refund %d: %w", refundID, err)
	}
	return refund, nil
}

func (s *refundService) GetRefundByID(ctx context.Context, refundID int64) (*domain.Refund, []domain.RefundPayment, error) {
	refund, err := s.refundRepo.FindRefundByID(ctx, refundID)
	if err != nil {
		return nil, nil, err
	}
	allocations, err := s.refundRepo.FindRefundPaymentsByRefundID(ctx, refundID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load allocations for refund %d: %w", refundID, err)
	}
	return refund, allocations, nil
}

func (s *refundService) ListRefunds(ctx context.Context) ([]domain.Refund, error) {
	return s.refundRepo.ListRefunds(ctx)
}

// AcknowledgeStaleRefunds implements portssvc.RefundSvcFacade. Completed
// refunds left unacknowledged past the timeout are auto-acknowledged so they
// stop surfacing in the staff worklist.
func (s *refundService) AcknowledgeStaleRefunds(ctx context.Context, olderThan time.Duration) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	cutoff := time.Now().UTC().Add(-olderThan)

	stale, err := s.refundRepo.FindStaleUnacknowledgedRefunds(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to find stale refunds: %w", err)
	}

	acknowledged := 0
	for i := range stale {
		r := stale[i]
		r.Acknowledged = true
		r.LastUpdatedAt = time.Now().UTC()
		r.LastUpdatedBy = SystemUserID

		audit := newAuditLog(SystemUserID, "AUTO_ACKNOWLEDGE", tableRefunds, strconv.FormatInt(r.RefundID, 10), r, "unacknowledged past timeout")
		if err := s.refundRepo.UpdateRefund(ctx, r, nil, audit); err != nil {
			logger.Error("Failed to auto-acknowledge refund",
				slog.Int64("refund_id", r.RefundID),
				slog.String("error", err.Error()))
			continue
		}
		acknowledged++
	}
	return acknowledged, nil
}
