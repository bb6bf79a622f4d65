package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/aquaverde/resort_backend/internal/core/domain"
	portsrepo "github.com/aquaverde/resort_backend/internal/core/ports/repositories"
	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/aquaverde/resort_backend/internal/middleware"
)

// conflictService decides whether a candidate date and mode collide with a
// blackout date or an existing non-terminal reservation. Checks run in a fixed
// order and the first hit wins: blocked date, then public entry, then booking.
type conflictService struct {
	blockedDateRepo portsrepo.BlockedDateReader
	publicEntryRepo portsrepo.PublicEntryReader
	bookingRepo     portsrepo.BookingReader
}

// NewConflictService creates a new conflict checker.
func NewConflictService(blockedDateRepo portsrepo.BlockedDateReader, publicEntryRepo portsrepo.PublicEntryReader, bookingRepo portsrepo.BookingReader) portssvc.ConflictCheckerSvc {
	return &conflictService{
		blockedDateRepo: blockedDateRepo,
		publicEntryRepo: publicEntryRepo,
		bookingRepo:     bookingRepo,
	}
}

var _ portssvc.ConflictCheckerSvc = (*conflictService)(nil)

// CheckConflicts implements portssvc.ConflictCheckerSvc.
func (s *conflictService) CheckConflicts(ctx context.Context, date time.Time, mode domain.TimeMode, exclude portssvc.ConflictExclusions) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	// 1. Administrative blackout check.
	block, err := s.blockedDateRepo.FindActiveBlockByDate(ctx, date)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to query blocked dates", slog.String("error", err.Error()))
		return fmt.Errorf("failed to check blocked dates: %w", err)
	}
	if block != nil {
		return fmt.Errorf("%w: date %s is blocked (%s)", apperrors.ErrConflict, date.Format("2006-01-02"), block.Category)
	}

	// 2. Public entry collision. A public entry occupies the whole facility
	// for its date, so the requested mode is irrelevant here.
	entries, err := s.publicEntryRepo.FindActivePublicEntriesByDate(ctx, date, exclude.PublicEntryID)
	if err != nil {
		logger.Error("Failed to query public entries for conflict check", slog.String("error", err.Error()))
		return fmt.Errorf("failed to check public entry conflicts: %w", err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("%w: a public entry already occupies %s", apperrors.ErrConflict, date.Format("2006-01-02"))
	}

	// 3. Booking collision. Whole-day on either side excludes everything;
	// partial modes only exclude the same mode.
	bookings, err := s.bookingRepo.FindActiveBookingsByDate(ctx, date, exclude.BookingID)
	if err != nil {
		logger.Error("Failed to query bookings for conflict check", slog.String("error", err.Error()))
		return fmt.Errorf("failed to check booking conflicts: %w", err)
	}
	for _, b := range bookings {
		switch {
		case mode == domain.WholeDay:
			return fmt.Errorf("%w: whole-day requested but %s already has a %s booking", apperrors.ErrConflict, date.Format("2006-01-02"), b.Mode)
		case b.Mode == domain.WholeDay:
			return fmt.Errorf("%w: %s is taken by a whole-day booking", apperrors.ErrConflict, date.Format("2006-01-02"))
		case b.Mode == mode:
			return fmt.Errorf("%w: %s already has a %s booking", apperrors.ErrConflict, date.Format("2006-01-02"), mode)
		}
	}

	return nil
}
