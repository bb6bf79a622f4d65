package services

import (
	"context"
	"errors"
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

// rateService administers the versioned rate table and resolves the price
// used for public entry charges.
type rateService struct {
	rateRepo       portsrepo.RateRepositoryFacade
	permissionRepo portsrepo.PermissionRepositoryFacade
}

// NewRateService creates a new rate service.
func NewRateService(rateRepo portsrepo.RateRepositoryFacade, permissionRepo portsrepo.PermissionRepositoryFacade) portssvc.RateSvcFacade {
	return &rateService{
		rateRepo:       rateRepo,
		permissionRepo: permissionRepo,
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// ResolveActiveRate implements portssvc.RateResolverSvc. When the requested
// mode has no active rate the opposite partial mode's active rate is used
// instead; only when both modes are empty does resolution fail.
func (s *rateService) ResolveActiveRate(ctx context.Context, category domain.RateCategory, mode domain.TimeMode) (*domain.PublicEntryRate, error) {
	rate, err := s.rateRepo.FindActiveRate(ctx, category, mode)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve rate for %s/%s: %w", category, mode, err)
	}

	fallback := domain.OppositeMode(mode)
	rate, err = s.rateRepo.FindActiveRate(ctx, category, fallback)
	if err == nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Rate resolved via opposite-mode fallback",
			slog.String("category", string(category)),
			slog.String("requested_mode", string(mode)),
			slog.String("fallback_mode", string(fallback)))
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve fallback rate for %s/%s: %w", category, fallback, err)
	}

	return nil, fmt.Errorf("%w: no active %s rate for %s or %s", apperrors.ErrNoActiveRate, category, mode, fallback)
}

// CreateRate implements portssvc.RateSvcFacade. New rates start inactive
// unless the request asks for immediate activation.
func (s *rateService) CreateRate(ctx context.Context, req dto.CreateRateRequest, userID string) (*domain.PublicEntryRate, error) {
	if err := checkPermission(ctx, s.permissionRepo, userID, tableRates, actionCreate); err != nil {
		return nil, err
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}
	if req.Mode == domain.WholeDay {
		return nil, fmt.Errorf("%w: rates apply to partial modes only", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	rate := domain.PublicEntryRate{
		Category: req.Category,
		Mode:     req.Mode,
		Rate:     req.Rate,
		IsActive: false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	audit := newAuditLog(userID, "CREATE", tableRates, "", rate, "")
	rateID, err := s.rateRepo.SaveRate(ctx, rate, audit)
	if err != nil {
		return nil, fmt.Errorf("failed to save rate: %w", err)
	}
	rate.RateID = rateID

	if req.Activate {
		return s.ActivateRate(ctx, rateID, userID)
	}
	return &rate, nil
}

func (s *rateService) GetRateByID(ctx context.Context, rateID int64) (*domain.PublicEntryRate, error) {
	return s.rateRepo.FindRateByID(ctx, rateID)
}

func (s *rateService) ListRates(ctx context.Context) ([]domain.PublicEntryRate, error) {
	return s.rateRepo.ListRates(ctx)
}

// ActivateRate implements portssvc.RateSvcFacade. Every currently active
// sibling for the pair is deactivated in the same transaction, so a previously
// violated exclusivity invariant is repaired here rather than reported.
func (s *rateService) ActivateRate(ctx context.Context, rateID int64, userID string) (*domain.PublicEntryRate, error) {
	if err := checkPermission(ctx, s.permissionRepo, userID, tableRates, actionUpdate); err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return nil, err
	}

	siblings, err := s.rateRepo.FindActiveRates(ctx, rate.Category, rate.Mode)
	if err != nil {
		return nil, fmt.Errorf("failed to find active rates for %s/%s: %w", rate.Category, rate.Mode, err)
	}

	deactivateIDs := make([]int64, 0, len(siblings))
	audits := make([]domain.AuditLog, 0, len(siblings)+1)
	for _, sib := range siblings {
		if sib.RateID == rateID {
			continue
		}
		deactivateIDs = append(deactivateIDs, sib.RateID)
		audits = append(audits, newAuditLog(userID, "DEACTIVATE", tableRates, strconv.FormatInt(sib.RateID, 10), sib, "displaced by activation"))
	}
	audits = append(audits, newAuditLog(userID, "ACTIVATE", tableRates, strconv.FormatInt(rateID, 10), rate, ""))

	if err := s.rateRepo.ActivateRate(ctx, rateID, deactivateIDs, audits, userID); err != nil {
		return nil, fmt.Errorf("failed to activate rate %d: %w", rateID, err)
	}

	rate.IsActive = true
	rate.LastUpdatedAt = time.Now().UTC()
	rate.LastUpdatedBy = userID
	return rate, nil
}

// DeactivateRate implements portssvc.RateSvcFacade. Deactivating the active
// rate promotes the most recently created inactive sibling so the pair keeps
// a usable price when one exists.
func (s *rateService) DeactivateRate(ctx context.Context, rateID int64, userID string) error {
	if err := checkPermission(ctx, s.permissionRepo, userID, tableRates, actionUpdate); err != nil {
		return err
	}

	rate, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return err
	}
	if !rate.IsActive {
		return fmt.Errorf("%w: rate %d is already inactive", apperrors.ErrValidation, rateID)
	}

	promoteRateID, audits, err := s.promotionPlan(ctx, rate, userID, "DEACTIVATE")
	if err != nil {
		return err
	}

	if err := s.rateRepo.DeactivateRate(ctx, rateID, promoteRateID, audits, userID); err != nil {
		return fmt.Errorf("failed to deactivate rate %d: %w", rateID, err)
	}
	return nil
}

// DeleteRate implements portssvc.RateSvcFacade.
func (s *rateService) DeleteRate(ctx context.Context, rateID int64, userID string) error {
	if err := checkPermission(ctx, s.permissionRepo, userID, tableRates, actionDelete); err != nil {
		return err
	}

	rate, err := s.rateRepo.FindRateByID(ctx, rateID)
	if err != nil {
		return err
	}

	var promoteRateID *int64
	var audits []domain.AuditLog
	if rate.IsActive {
		promoteRateID, audits, err = s.promotionPlan(ctx, rate, userID, "DELETE")
		if err != nil {
			return err
		}
	} else {
		audits = []domain.AuditLog{newAuditLog(userID, "DELETE", tableRates, strconv.FormatInt(rateID, 10), rate, "")}
	}

	if err := s.rateRepo.DeleteRate(ctx, rateID, promoteRateID, audits, userID); err != nil {
		return fmt.Errorf("failed to delete rate %d: %w", rateID, err)
	}
	return nil
}

// promotionPlan selects the fallback row promoted when an active rate leaves
// the table and builds the audit entries for the composite write.
func (s *rateService) promotionPlan(ctx context.Context, rate *domain.PublicEntryRate, userID, action string) (*int64, []domain.AuditLog, error) {
	audits := []domain.AuditLog{newAuditLog(userID, action, tableRates, strconv.FormatInt(rate.RateID, 10), rate, "")}

	inactive, err := s.rateRepo.FindInactiveRates(ctx, rate.Category, rate.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find promotion candidates for %s/%s: %w", rate.Category, rate.Mode, err)
	}

	var promoteRateID *int64
	for _, cand := range inactive {
		if cand.RateID == rate.RateID {
			continue
		}
		id := cand.RateID
		promoteRateID = &id
		audits = append(audits, newAuditLog(userID, "ACTIVATE", tableRates, strconv.FormatInt(id, 10), cand, "promoted as fallback"))
		break
	}
	if promoteRateID == nil {
		middleware.GetLoggerFromCtx(ctx).Warn("No fallback rate to promote",
			slog.String("category", string(rate.Category)),
			slog.String("mode", string(rate.Mode)))
	}
	return promoteRateID, audits, nil
}
