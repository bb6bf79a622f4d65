package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/aquaverde/resort_backend/internal/core/domain"
	portsrepo "github.com/aquaverde/resort_backend/internal/core/ports/repositories"
	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/aquaverde/resort_backend/internal/dto"
)

// blockedDateService administers the blackout dates consulted by the conflict
// checker.
type blockedDateService struct {
	blockedDateRepo portsrepo.BlockedDateRepositoryFacade
	permissionRepo  portsrepo.PermissionRepositoryFacade
}

// NewBlockedDateService creates a new blocked date service.
func NewBlockedDateService(blockedDateRepo portsrepo.BlockedDateRepositoryFacade, permissionRepo portsrepo.PermissionRepositoryFacade) portssvc.BlockedDateSvcFacade {
	return &blockedDateService{
		blockedDateRepo: blockedDateRepo,
		permissionRepo:  permissionRepo,
	}
}

var _ portssvc.BlockedDateSvcFacade = (*blockedDateService)(nil)

// CreateBlockedDate implements portssvc.BlockedDateSvcFacade. A date may carry
// at most one active block.
func (s *blockedDateService) CreateBlockedDate(ctx context.Context, req dto.CreateBlockedDateRequest, userID string) (*domain.BlockedDate, error) {
	if err := checkPermission(ctx, s.permissionRepo, userID, tableBlockedDates, actionCreate); err != nil {
		return nil, err
	}

	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}

	existing, err := s.blockedDateRepo.FindActiveBlockByDate(ctx, date)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing block: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: date %s is already blocked", apperrors.ErrConflict, req.Date)
	}

	now := time.Now().UTC()
	block := domain.BlockedDate{
		Date:     date,
		Category: req.Category,
		Status:   domain.BlockActive,
		Remarks:  req.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	audit := newAuditLog(userID, "CREATE", tableBlockedDates, "", block, "")
	blockedDateID, err := s.blockedDateRepo.SaveBlockedDate(ctx, block, audit)
	if err != nil {
		return nil, fmt.Errorf("failed to save blocked date: %w", err)
	}
	block.BlockedDateID = blockedDateID
	return &block, nil
}

// CancelBlockedDate implements portssvc.BlockedDateSvcFacade. Cancelling lifts
// the blackout; the row stays for the audit trail.
func (s *blockedDateService) CancelBlockedDate(ctx context.Context, blockedDateID int64, userID string) error {
	if err := checkPermission(ctx, s.permissionRepo, userID, tableBlockedDates, actionUpdate); err != nil {
		return err
	}

	block, err := s.blockedDateRepo.FindBlockedDateByID(ctx, blockedDateID)
	if err != nil {
		return err
	}
	if block.Status == domain.BlockCancelled {
		return fmt.Errorf("%w: blocked date %d is already cancelled", apperrors.ErrValidation, blockedDateID)
	}

	block.Status = domain.BlockCancelled
	block.LastUpdatedAt = time.Now().UTC()
	block.LastUpdatedBy = userID

	audit := newAuditLog(userID, "CANCEL", tableBlockedDates, strconv.FormatInt(blockedDateID, 10), block, "")
	if err := s.blockedDateRepo.UpdateBlockedDate(ctx, *block, audit); err != nil {
		return fmt.Errorf("failed to cancel blocked date %d: %w", blockedDateID, err)
	}
	return nil
}

func (s *blockedDateService) ListBlockedDates(ctx context.Context) ([]domain.BlockedDate, error) {
	return s.blockedDateRepo.ListBlockedDates(ctx)
}
