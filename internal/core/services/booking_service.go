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

const defaultListLimit = 20

// bookingService implements the booking lifecycle: creation behind the
// conflict check, field updates, status transitions, and the expiry forfeit
// sweep. Cancellation of a paid booking issues the refund and finalizes the
// ledger through one composite repository write.
type bookingService struct {
	bookingRepo    portsrepo.BookingRepositoryFacade
	paymentRepo    portsrepo.PaymentReader
	refundRepo     portsrepo.RefundRepositoryFacade
	permissionRepo portsrepo.PermissionRepositoryFacade
	conflicts      portssvc.ConflictCheckerSvc
	planner        *refundPlanner
}

// NewBookingService creates a new booking service. retention is the fraction
// of the paid total returned on a refund-triggering cancellation.
func NewBookingService(
	bookingRepo portsrepo.BookingRepositoryFacade,
	paymentRepo portsrepo.PaymentReader,
	refundRepo portsrepo.RefundRepositoryFacade,
	permissionRepo portsrepo.PermissionRepositoryFacade,
	conflicts portssvc.ConflictCheckerSvc,
	retention decimal.Decimal,
) portssvc.BookingSvcFacade {
	return &bookingService{
		bookingRepo:    bookingRepo,
		paymentRepo:    paymentRepo,
		refundRepo:     refundRepo,
		permissionRepo: permissionRepo,
		conflicts:      conflicts,
		planner:        newRefundPlanner(paymentRepo, refundRepo, retention),
	}
}

var _ portssvc.BookingSvcFacade = (*bookingService)(nil)

// CreateBooking implements portssvc.BookingSvcFacade.
func (s *bookingService) CreateBooking(ctx context.Context, req dto.CreateBookingRequest, userID string) (*domain.Booking, error) {
	if err := checkPermission(ctx, s.permissionRepo, userID, tableBookings, actionCreate); err != nil {
		return nil, err
	}

	checkIn, err := time.Parse(dto.DateLayout, req.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid check-in date %q", apperrors.ErrValidation, req.CheckInDate)
	}
	checkOut, err := time.Parse(dto.DateLayout, req.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid check-out date %q", apperrors.ErrValidation, req.CheckOutDate)
	}
	if checkOut.Before(checkIn) {
		return nil, fmt.Errorf("%w: check-out date precedes check-in date", apperrors.ErrValidation)
	}
	if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: total amount must be positive", apperrors.ErrValidation)
	}

	if err := s.conflicts.CheckConflicts(ctx, checkIn, req.Mode, portssvc.ConflictExclusions{}); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking := domain.Booking{
		GuestName:        req.GuestName,
		ContactNumber:    req.ContactNumber,
		Email:            req.Email,
		CheckInDate:      checkIn,
		CheckOutDate:     checkOut,
		Mode:             req.Mode,
		Status:           domain.StatusPending,
		TotalAmount:      req.TotalAmount,
		AmountPaid:       decimal.Zero,
		RemainingBalance: req.TotalAmount,
		PaymentStatus:    domain.PayUnpaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	audit := newAuditLog(userID, "CREATE", tableBookings, "", booking, "")
	bookingID, err := s.bookingRepo.SaveBooking(ctx, booking, audit)
	if err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	booking.BookingID = bookingID

	middleware.GetLoggerFromCtx(ctx).Info("Booking created",
		slog.Int64("booking_id", bookingID),
		slog.String("check_in", req.CheckInDate),
		slog.String("mode", string(req.Mode)))
	return &booking, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	return s.bookingRepo.FindBookingByID(ctx, bookingID)
}

func (s *bookingService) ListBookings(ctx context.Context, limit int, nextToken *string) (*dto.ListBookingsResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	bookings, next, err := s.bookingRepo.ListBookings(ctx, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	resp := dto.ToListBookingsResponse(bookings, next)
	return &resp, nil
}

// UpdateBooking implements portssvc.BookingSvcFacade. Changing the date or
// mode re-runs the conflict check with the booking itself excluded.
func (s *bookingService) UpdateBooking(ctx context.Context, bookingID int64, req dto.UpdateBookingRequest, userID string) (*domain.Booking, error) {
	if err := checkPermission(ctx, s.permissionRepo, userID, tableBookings, actionUpdate); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if domain.IsTerminal(booking.Status) {
		return nil, fmt.Errorf("%w: booking %d is %s and cannot be modified", apperrors.ErrValidation, bookingID, booking.Status)
	}

	slotChanged := false
	if req.GuestName != nil {
		booking.GuestName = *req.GuestName
	}
	if req.ContactNumber != nil {
		booking.ContactNumber = *req.ContactNumber
	}
	if req.Email != nil {
		booking.Email = *req.Email
	}
	if req.CheckInDate != nil {
		checkIn, perr := time.Parse(dto.DateLayout, *req.CheckInDate)
		if perr != nil {
			return nil, fmt.Errorf("%w: invalid check-in date %q", apperrors.ErrValidation, *req.CheckInDate)
		}
		if !domain.SameCalendarDate(checkIn, booking.CheckInDate) {
			slotChanged = true
		}
		booking.CheckInDate = checkIn
	}
	if req.CheckOutDate != nil {
		checkOut, perr := time.Parse(dto.DateLayout, *req.CheckOutDate)
		if perr != nil {
			return nil, fmt.Errorf("%w: invalid check-out date %q", apperrors.ErrValidation, *req.CheckOutDate)
		}
		booking.CheckOutDate = checkOut
	}
	if req.Mode != nil && *req.Mode != booking.Mode {
		booking.Mode = *req.Mode
		slotChanged = true
	}
	if req.TotalAmount != nil {
		if req.TotalAmount.LessThan(booking.AmountPaid) {
			return nil, fmt.Errorf("%w: total amount cannot drop below the paid amount", apperrors.ErrValidation)
		}
		booking.TotalAmount = *req.TotalAmount
		booking.RemainingBalance = booking.TotalAmount.Sub(booking.AmountPaid)
		booking.PaymentStatus = domain.DerivePaymentStatus(booking.AmountPaid, booking.RemainingBalance)
	}
	if booking.CheckOutDate.Before(booking.CheckInDate) {
		return nil, fmt.Errorf("%w: check-out date precedes check-in date", apperrors.ErrValidation)
	}

	if slotChanged {
		exclude := portssvc.ConflictExclusions{BookingID: &bookingID}
		if err := s.conflicts.CheckConflicts(ctx, booking.CheckInDate, booking.Mode, exclude); err != nil {
			return nil, err
		}
	}

	booking.LastUpdatedAt = time.Now().UTC()
	booking.LastUpdatedBy = userID

	audit := newAuditLog(userID, "UPDATE", tableBookings, strconv.FormatInt(bookingID, 10), booking, "")
	if err := s.bookingRepo.UpdateBooking(ctx, *booking, audit); err != nil {
		return nil, fmt.Errorf("failed to update booking %d: %w", bookingID, err)
	}
	return booking, nil
}

// SetBookingStatus implements portssvc.BookingSvcFacade. It validates the
// transition against the booking table, then dispatches to the cancellation
// or reschedule flow when the target demands one.
func (s *bookingService) SetBookingStatus(ctx context.Context, bookingID int64, req dto.SetReservationStatusRequest, userID string) (*domain.Booking, error) {
	if err := checkPermission(ctx, s.permissionRepo, userID, tableBookings, actionUpdate); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.FindBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if req.Status == booking.Status {
		return nil, fmt.Errorf("%w: booking %d is already %s", apperrors.ErrValidation, bookingID, req.Status)
	}
	if !domain.CanTransition(domain.KindBooking, booking.Status, req.Status) {
		return nil, fmt.Errorf("%w: booking cannot move from %s to %s", apperrors.ErrValidation, booking.Status, req.Status)
	}

	switch req.Status {
	case domain.StatusCancelled:
		return s.cancelBooking(ctx, booking, req, userID)
	case domain.StatusRescheduled:
		return s.rescheduleBooking(ctx, booking, req, userID)
	default:
		return s.applyStatus(ctx, booking, req, userID)
	}
}

// applyStatus performs a plain transition with no side effects beyond the
// status column and the audit trail.
func (s *bookingService) applyStatus(ctx context.Context, booking *domain.Booking, req dto.SetReservationStatusRequest, userID string) (*domain.Booking, error) {
	change := statusChange{From: booking.Status, To: req.Status}
	booking.Status = req.Status
	if req.Status == domain.StatusPendingCancellation {
		if err := validateCancelMetadata(req.CancelCategory, req.CancelReason); err != nil {
			return nil, err
		}
		booking.CancelCategory = req.CancelCategory
		booking.CancelReason = req.CancelReason
	}
	booking.LastUpdatedAt = time.Now().UTC()
	booking.LastUpdatedBy = userID

	audit := newAuditLog(userID, "STATUS_CHANGE", tableBookings, strconv.FormatInt(booking.BookingID, 10), change, "")
	if err := s.bookingRepo.UpdateBooking(ctx, *booking, audit); err != nil {
		return nil, fmt.Errorf("failed to update booking %d: %w", booking.BookingID, err)
	}
	return booking, nil
}

// cancelBooking finalizes a cancellation. When valid payments exist the
// retention policy produces a refund and the booking's ledger adjustment
// commits with it atomically; an unpaid booking cancels plainly.
func (s *bookingService) cancelBooking(ctx context.Context, booking *domain.Booking, req dto.SetReservationStatusRequest, userID string) (*domain.Booking, error) {
	if err := validateCancelMetadata(req.CancelCategory, req.CancelReason); err != nil {
		return nil, err
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	payments, err := s.paymentRepo.FindValidPaymentsByReservation(ctx, booking.Ref())
	if err != nil {
		return nil, fmt.Errorf("failed to load payments for booking %d: %w", booking.BookingID, err)
	}

	change := statusChange{From: booking.Status, To: domain.StatusCancelled}

	if len(payments) == 0 {
		booking.Status = domain.StatusCancelled
		booking.CancelCategory = req.CancelCategory
		booking.CancelReason = req.CancelReason
		booking.LastUpdatedAt = time.Now().UTC()
		booking.LastUpdatedBy = userID

		audit := newAuditLog(userID, "CANCEL", tableBookings, strconv.FormatInt(booking.BookingID, 10), change, req.CancelReason)
		if err := s.bookingRepo.UpdateBooking(ctx, *booking, audit); err != nil {
			return nil, fmt.Errorf("failed to cancel booking %d: %w", booking.BookingID, err)
		}
		return booking, nil
	}

	if req.RefundMethod == nil {
		return nil, fmt.Errorf("%w: cancelling a paid booking requires a refund method", apperrors.ErrValidation)
	}

	reason := req.CancelReason
	if reason == "" {
		reason = string(*req.CancelCategory)
	}
	plan, err := s.planner.planRefund(ctx, booking.Ref(), *req.RefundMethod, req.GcashReference, req.GcashImageURL, reason, "", userID)
	if err != nil {
		return nil, err
	}

	ledger := refundLedger(booking.Ref(), booking.AmountPaid, booking.RemainingBalance, plan.Amount, req.CancelCategory, req.CancelReason, userID)
	audit := newAuditLog(userID, "CANCEL_REFUND", tableBookings, strconv.FormatInt(booking.BookingID, 10), change, reason)

	refundID, err := s.refundRepo.SaveRefund(ctx, plan.Refund, plan.Allocations, ledger, audit)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel booking %d with refund: %w", booking.BookingID, err)
	}

	logger.Info("Booking cancelled with refund",
		slog.Int64("booking_id", booking.BookingID),
		slog.Int64("refund_id", refundID),
		slog.String("refund_amount", plan.Amount.String()))

	booking.Status = domain.StatusCancelled
	booking.CancelCategory = req.CancelCategory
	booking.CancelReason = req.CancelReason
	booking.AmountPaid = ledger.AmountPaid
	booking.RemainingBalance = ledger.RemainingBalance
	booking.PaymentStatus = ledger.PaymentStatus
	booking.LastUpdatedAt = time.Now().UTC()
	booking.LastUpdatedBy = userID
	return booking, nil
}

// rescheduleBooking moves the booking to a new slot after re-running the
// conflict check with the booking itself excluded.
func (s *bookingService) rescheduleBooking(ctx context.Context, booking *domain.Booking, req dto.SetReservationStatusRequest, userID string) (*domain.Booking, error) {
	if req.NewDate == nil {
		return nil, fmt.Errorf("%w: rescheduling requires a new date", apperrors.ErrValidation)
	}
	newDate, err := time.Parse(dto.DateLayout, *req.NewDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid new date %q", apperrors.ErrValidation, *req.NewDate)
	}

	newMode := booking.Mode
	if req.NewMode != nil {
		newMode = *req.NewMode
	}
	// Preserve the stay length unless a new check-out is given.
	newCheckOut := newDate.Add(booking.CheckOutDate.Sub(booking.CheckInDate))
	if req.NewCheckOut != nil {
		newCheckOut, err = time.Parse(dto.DateLayout, *req.NewCheckOut)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid new check-out date %q", apperrors.ErrValidation, *req.NewCheckOut)
		}
	}
	if newCheckOut.Before(newDate) {
		return nil, fmt.Errorf("%w: check-out date precedes check-in date", apperrors.ErrValidation)
	}

	exclude := portssvc.ConflictExclusions{BookingID: &booking.BookingID}
	if err := s.conflicts.CheckConflicts(ctx, newDate, newMode, exclude); err != nil {
		return nil, err
	}

	change := statusChange{From: booking.Status, To: domain.StatusRescheduled}
	booking.Status = domain.StatusRescheduled
	booking.CheckInDate = newDate
	booking.CheckOutDate = newCheckOut
	booking.Mode = newMode
	booking.LastUpdatedAt = time.Now().UTC()
	booking.LastUpdatedBy = userID

	audit := newAuditLog(userID, "RESCHEDULE", tableBookings, strconv.FormatInt(booking.BookingID, 10), change, "")
	if err := s.bookingRepo.UpdateBooking(ctx, *booking, audit); err != nil {
		return nil, fmt.Errorf("failed to reschedule booking %d: %w", booking.BookingID, err)
	}
	return booking, nil
}

// ForfeitExpiredBookings implements portssvc.BookingSvcFacade. Bookings whose
// check-in date passed the grace window are cancelled keeping any money paid;
// no refund is issued for a forfeit.
func (s *bookingService) ForfeitExpiredBookings(ctx context.Context, grace time.Duration) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	cutoff := time.Now().UTC().Add(-grace)

	expired, err := s.bookingRepo.FindExpiredBookings(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to find expired bookings: %w", err)
	}

	forfeited := 0
	for i := range expired {
		b := expired[i]
		if !domain.CanTransition(domain.KindBooking, b.Status, domain.StatusCancelled) {
			continue
		}
		change := statusChange{From: b.Status, To: domain.StatusCancelled}
		category := domain.CancelInternalUse
		b.Status = domain.StatusCancelled
		b.CancelCategory = &category
		b.CancelReason = "forfeited after expiry grace window"
		b.LastUpdatedAt = time.Now().UTC()
		b.LastUpdatedBy = SystemUserID

		audit := newAuditLog(SystemUserID, "FORFEIT", tableBookings, strconv.FormatInt(b.BookingID, 10), change, b.CancelReason)
		if err := s.bookingRepo.UpdateBooking(ctx, b, audit); err != nil {
			logger.Error("Failed to forfeit expired booking",
				slog.Int64("booking_id", b.BookingID),
				slog.String("error", err.Error()))
			continue
		}
		forfeited++
	}
	return forfeited, nil
}
