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

var oneHundred = decimal.NewFromInt(100)

// publicEntryService implements the day-use entry lifecycle. Pricing always
// comes from the active rate table; clients never supply a total. Unlike a
// paid booking, a cancelled public entry only triggers a refund for a
// natural disaster.
type publicEntryService struct {
	publicEntryRepo portsrepo.PublicEntryRepositoryFacade
	paymentRepo     portsrepo.PaymentReader
	refundRepo      portsrepo.RefundRepositoryFacade
	permissionRepo  portsrepo.PermissionRepositoryFacade
	conflicts       portssvc.ConflictCheckerSvc
	rates           portssvc.RateResolverSvc
	planner         *refundPlanner
}

// NewPublicEntryService creates a new public entry service.
func NewPublicEntryService(
	publicEntryRepo portsrepo.PublicEntryRepositoryFacade,
	paymentRepo portsrepo.PaymentReader,
	refundRepo portsrepo.RefundRepositoryFacade,
	permissionRepo portsrepo.PermissionRepositoryFacade,
	conflicts portssvc.ConflictCheckerSvc,
	rates portssvc.RateResolverSvc,
	retention decimal.Decimal,
) portssvc.PublicEntrySvcFacade {
	return &publicEntryService{
		publicEntryRepo: publicEntryRepo,
		paymentRepo:     paymentRepo,
		refundRepo:      refundRepo,
		permissionRepo:  permissionRepo,
		conflicts:       conflicts,
		rates:           rates,
		planner:         newRefundPlanner(paymentRepo, refundRepo, retention),
	}
}

var _ portssvc.PublicEntrySvcFacade = (*publicEntryService)(nil)

// pricing is the outcome of resolving rates and computing the charge.
type pricing struct {
	AdultRateID int64
	KidRateID   int64
	Total       decimal.Decimal
}

// price resolves the active adult and kid rates for the mode and computes
// (adults * adultRate + kids * kidRate) * (1 - discount/100), rounded to
// cents.
func (s *publicEntryService) price(ctx context.Context, mode domain.TimeMode, adultCount, kidCount int, discountPercent decimal.Decimal) (*pricing, error) {
	if adultCount < 0 || kidCount < 0 {
		return nil, fmt.Errorf("%w: guest counts cannot be negative", apperrors.ErrValidation)
	}
	if adultCount+kidCount == 0 {
		return nil, fmt.Errorf("%w: at least one guest is required", apperrors.ErrValidation)
	}
	if discountPercent.LessThan(decimal.Zero) || discountPercent.GreaterThan(oneHundred) {
		return nil, fmt.Errorf("%w: discount percent must be between 0 and 100", apperrors.ErrValidation)
	}

	adultRate, err := s.rates.ResolveActiveRate(ctx, domain.Adult, mode)
	if err != nil {
		return nil, err
	}
	kidRate, err := s.rates.ResolveActiveRate(ctx, domain.Kid, mode)
	if err != nil {
		return nil, err
	}

	gross := adultRate.Rate.Mul(decimal.NewFromInt(int64(adultCount))).
		Add(kidRate.Rate.Mul(decimal.NewFromInt(int64(kidCount))))
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(oneHundred))
	total := gross.Mul(factor).Round(2)

	return &pricing{
		AdultRateID: adultRate.RateID,
		KidRateID:   kidRate.RateID,
		Total:       total,
	}, nil
}

// CreatePublicEntry implements portssvc.PublicEntrySvcFacade.
func (s *publicEntryService) CreatePublicEntry(ctx context.Context, req dto.CreatePublicEntryRequest, userID string) (*domain.PublicEntry, error) {
	if err := checkPermission(ctx, s.permissionRepo, userID, tablePublicEntry, actionCreate); err != nil {
		return nil, err
	}

	entryDate, err := time.Parse(dto.DateLayout, req.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entry date %q", apperrors.ErrValidation, req.EntryDate)
	}

	if err := s.conflicts.CheckConflicts(ctx, entryDate, req.Mode, portssvc.ConflictExclusions{}); err != nil {
		return nil, err
	}

	priced, err := s.price(ctx, req.Mode, req.AdultCount, req.KidCount, req.DiscountPercent)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.PublicEntry{
		GuestName:        req.GuestName,
		ContactNumber:    req.ContactNumber,
		Email:            req.Email,
		EntryDate:        entryDate,
		Mode:             req.Mode,
		AdultCount:       req.AdultCount,
		KidCount:         req.KidCount,
		AdultRateID:      priced.AdultRateID,
		KidRateID:        priced.KidRateID,
		DiscountPercent:  req.DiscountPercent,
		Status:           domain.StatusPending,
		TotalAmount:      priced.Total,
		AmountPaid:       decimal.Zero,
		RemainingBalance: priced.Total,
		PaymentStatus:    domain.PayUnpaid,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	audit := newAuditLog(userID, "CREATE", tablePublicEntry, "", entry, "")
	publicEntryID, err := s.publicEntryRepo.SavePublicEntry(ctx, entry, audit)
	if err != nil {
		return nil, fmt.Errorf("failed to save public entry: %w", err)
	}
	entry.PublicEntryID = publicEntryID

	middleware.GetLoggerFromCtx(ctx).Info("Public entry created",
		slog.Int64("public_entry_id", publicEntryID),
		slog.String("entry_date", req.EntryDate),
		slog.String("total", priced.Total.String()))
	return &entry, nil
}

func (s *publicEntryService) GetPublicEntryByID(ctx context.Context, publicEntryID int64) (*domain.PublicEntry, error) {
	return s.publicEntryRepo.FindPublicEntryByID(ctx, publicEntryID)
}

func (s *publicEntryService) ListPublicEntries(ctx context.Context, limit int, nextToken *string) (*dto.ListPublicEntriesResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	entries, next, err := s.publicEntryRepo.ListPublicEntries(ctx, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list public entries: %w", err)
	}
	resp := dto.ToListPublicEntriesResponse(entries, next)
	return &resp, nil
}

// UpdatePublicEntry implements portssvc.PublicEntrySvcFacade. Changing the
// date or mode re-runs the conflict check; changing counts, mode, or discount
// reprices the entry against the current rate table.
func (s *publicEntryService) UpdatePublicEntry(ctx context.Context, publicEntryID int64, req dto.UpdatePublicEntryRequest, userID string) (*domain.PublicEntry, error) {
	if err := checkPermission(ctx, s.permissionRepo, userID, tablePublicEntry, actionUpdate); err != nil {
		return nil, err
	}

	entry, err := s.publicEntryRepo.FindPublicEntryByID(ctx, publicEntryID)
	if err != nil {
		return nil, err
	}
	if domain.IsTerminal(entry.Status) {
		return nil, fmt.Errorf("%w: public entry %d is %s and cannot be modified", apperrors.ErrValidation, publicEntryID, entry.Status)
	}

	slotChanged := false
	repriceNeeded := false
	if req.GuestName != nil {
		entry.GuestName = *req.GuestName
	}
	if req.ContactNumber != nil {
		entry.ContactNumber = *req.ContactNumber
	}
	if req.Email != nil {
		entry.Email = *req.Email
	}
	if req.EntryDate != nil {
		entryDate, perr := time.Parse(dto.DateLayout, *req.EntryDate)
		if perr != nil {
			return nil, fmt.Errorf("%w: invalid entry date %q", apperrors.ErrValidation, *req.EntryDate)
		}
		if !domain.SameCalendarDate(entryDate, entry.EntryDate) {
			slotChanged = true
		}
		entry.EntryDate = entryDate
	}
	if req.Mode != nil && *req.Mode != entry.Mode {
		entry.Mode = *req.Mode
		slotChanged = true
		repriceNeeded = true
	}
	if req.AdultCount != nil && *req.AdultCount != entry.AdultCount {
		entry.AdultCount = *req.AdultCount
		repriceNeeded = true
	}
	if req.KidCount != nil && *req.KidCount != entry.KidCount {
		entry.KidCount = *req.KidCount
		repriceNeeded = true
	}
	if req.DiscountPercent != nil && !req.DiscountPercent.Equal(entry.DiscountPercent) {
		entry.DiscountPercent = *req.DiscountPercent
		repriceNeeded = true
	}

	if slotChanged {
		exclude := portssvc.ConflictExclusions{PublicEntryID: &publicEntryID}
		if err := s.conflicts.CheckConflicts(ctx, entry.EntryDate, entry.Mode, exclude); err != nil {
			return nil, err
		}
	}

	if repriceNeeded {
		priced, perr := s.price(ctx, entry.Mode, entry.AdultCount, entry.KidCount, entry.DiscountPercent)
		if perr != nil {
			return nil, perr
		}
		if priced.Total.LessThan(entry.AmountPaid) {
			return nil, fmt.Errorf("%w: repriced total cannot drop below the paid amount", apperrors.ErrValidation)
		}
		entry.AdultRateID = priced.AdultRateID
		entry.KidRateID = priced.KidRateID
		entry.TotalAmount = priced.Total
		entry.RemainingBalance = priced.Total.Sub(entry.AmountPaid)
		entry.PaymentStatus = domain.DerivePaymentStatus(entry.AmountPaid, entry.RemainingBalance)
	}

	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = userID

	audit := newAuditLog(userID, "UPDATE", tablePublicEntry, strconv.FormatInt(publicEntryID, 10), entry, "")
	if err := s.publicEntryRepo.UpdatePublicEntry(ctx, *entry, audit); err != nil {
		return nil, fmt.Errorf("failed to update public entry %d: %w", publicEntryID, err)
	}
	return entry, nil
}

// SetPublicEntryStatus implements portssvc.PublicEntrySvcFacade.
func (s *publicEntryService) SetPublicEntryStatus(ctx context.Context, publicEntryID int64, req dto.SetReservationStatusRequest, userID string) (*domain.PublicEntry, error) {
	if err := checkPermission(ctx, s.permissionRepo, userID, tablePublicEntry, actionUpdate); err != nil {
		return nil, err
	}

	entry, err := s.publicEntryRepo.FindPublicEntryByID(ctx, publicEntryID)
	if err != nil {
		return nil, err
	}

	if req.Status == entry.Status {
		return nil, fmt.Errorf("%w: public entry %d is already %s", apperrors.ErrValidation, publicEntryID, req.Status)
	}
	if !domain.CanTransition(domain.KindPublicEntry, entry.Status, req.Status) {
		return nil, fmt.Errorf("%w: public entry cannot move from %s to %s", apperrors.ErrValidation, entry.Status, req.Status)
	}

	switch req.Status {
	case domain.StatusCancelled:
		return s.cancelPublicEntry(ctx, entry, req, userID)
	case domain.StatusRescheduled:
		return s.reschedulePublicEntry(ctx, entry, req, userID)
	default:
		change := statusChange{From: entry.Status, To: req.Status}
		entry.Status = req.Status
		if req.Status == domain.StatusPendingCancellation {
			if err := validateCancelMetadata(req.CancelCategory, req.CancelReason); err != nil {
				return nil, err
			}
			entry.CancelCategory = req.CancelCategory
			entry.CancelReason = req.CancelReason
		}
		entry.LastUpdatedAt = time.Now().UTC()
		entry.LastUpdatedBy = userID

		audit := newAuditLog(userID, "STATUS_CHANGE", tablePublicEntry, strconv.FormatInt(publicEntryID, 10), change, "")
		if err := s.publicEntryRepo.UpdatePublicEntry(ctx, *entry, audit); err != nil {
			return nil, fmt.Errorf("failed to update public entry %d: %w", publicEntryID, err)
		}
		return entry, nil
	}
}

// cancelPublicEntry finalizes a cancellation. Only a natural disaster refunds
// a paid entry; every other category keeps the money and cancels plainly.
func (s *publicEntryService) cancelPublicEntry(ctx context.Context, entry *domain.PublicEntry, req dto.SetReservationStatusRequest, userID string) (*domain.PublicEntry, error) {
	if err := validateCancelMetadata(req.CancelCategory, req.CancelReason); err != nil {
		return nil, err
	}

	change := statusChange{From: entry.Status, To: domain.StatusCancelled}
	refundDue := *req.CancelCategory == domain.CancelNaturalDisaster && !entry.AmountPaid.IsZero()

	if !refundDue {
		entry.Status = domain.StatusCancelled
		entry.CancelCategory = req.CancelCategory
		entry.CancelReason = req.CancelReason
		entry.LastUpdatedAt = time.Now().UTC()
		entry.LastUpdatedBy = userID

		audit := newAuditLog(userID, "CANCEL", tablePublicEntry, strconv.FormatInt(entry.PublicEntryID, 10), change, req.CancelReason)
		if err := s.publicEntryRepo.UpdatePublicEntry(ctx, *entry, audit); err != nil {
			return nil, fmt.Errorf("failed to cancel public entry %d: %w", entry.PublicEntryID, err)
		}
		return entry, nil
	}

	if req.RefundMethod == nil {
		return nil, fmt.Errorf("%w: refunding a paid public entry requires a refund method", apperrors.ErrValidation)
	}

	reason := req.CancelReason
	if reason == "" {
		reason = string(*req.CancelCategory)
	}
	plan, err := s.planner.planRefund(ctx, entry.Ref(), *req.RefundMethod, req.GcashReference, req.GcashImageURL, reason, "", userID)
	if err != nil {
		return nil, err
	}

	ledger := refundLedger(entry.Ref(), entry.AmountPaid, entry.RemainingBalance, plan.Amount, req.CancelCategory, req.CancelReason, userID)
	audit := newAuditLog(userID, "CANCEL_REFUND", tablePublicEntry, strconv.FormatInt(entry.PublicEntryID, 10), change, reason)

	refundID, err := s.refundRepo.SaveRefund(ctx, plan.Refund, plan.Allocations, ledger, audit)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel public entry %d with refund: %w", entry.PublicEntryID, err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Public entry cancelled with refund",
		slog.Int64("public_entry_id", entry.PublicEntryID),
		slog.Int64("refund_id", refundID),
		slog.String("refund_amount", plan.Amount.String()))

	entry.Status = domain.StatusCancelled
	entry.CancelCategory = req.CancelCategory
	entry.CancelReason = req.CancelReason
	entry.AmountPaid = ledger.AmountPaid
	entry.RemainingBalance = ledger.RemainingBalance
	entry.PaymentStatus = ledger.PaymentStatus
	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = userID
	return entry, nil
}

// reschedulePublicEntry moves the entry to a new slot and reprices it when
// the mode changes.
func (s *publicEntryService) reschedulePublicEntry(ctx context.Context, entry *domain.PublicEntry, req dto.SetReservationStatusRequest, userID string) (*domain.PublicEntry, error) {
	if req.NewDate == nil {
		return nil, fmt.Errorf("%w: rescheduling requires a new date", apperrors.ErrValidation)
	}
	newDate, err := time.Parse(dto.DateLayout, *req.NewDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid new date %q", apperrors.ErrValidation, *req.NewDate)
	}

	newMode := entry.Mode
	if req.NewMode != nil {
		if *req.NewMode == domain.WholeDay {
			return nil, fmt.Errorf("%w: public entries use partial modes only", apperrors.ErrValidation)
		}
		newMode = *req.NewMode
	}

	exclude := portssvc.ConflictExclusions{PublicEntryID: &entry.PublicEntryID}
	if err := s.conflicts.CheckConflicts(ctx, newDate, newMode, exclude); err != nil {
		return nil, err
	}

	change := statusChange{From: entry.Status, To: domain.StatusRescheduled}
	entry.Status = domain.StatusRescheduled
	entry.EntryDate = newDate

	if newMode != entry.Mode {
		entry.Mode = newMode
		priced, perr := s.price(ctx, newMode, entry.AdultCount, entry.KidCount, entry.DiscountPercent)
		if perr != nil {
			return nil, perr
		}
		if priced.Total.LessThan(entry.AmountPaid) {
			return nil, fmt.Errorf("%w: repriced total cannot drop below the paid amount", apperrors.ErrValidation)
		}
		entry.AdultRateID = priced.AdultRateID
		entry.KidRateID = priced.KidRateID
		entry.TotalAmount = priced.Total
		entry.RemainingBalance = priced.Total.Sub(entry.AmountPaid)
		entry.PaymentStatus = domain.DerivePaymentStatus(entry.AmountPaid, entry.RemainingBalance)
	}

	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = userID

	audit := newAuditLog(userID, "RESCHEDULE", tablePublicEntry, strconv.FormatInt(entry.PublicEntryID, 10), change, "")
	if err := s.publicEntryRepo.UpdatePublicEntry(ctx, *entry, audit); err != nil {
		return nil, fmt.Errorf("failed to reschedule public entry %d: %w", entry.PublicEntryID, err)
	}
	return entry, nil
}
