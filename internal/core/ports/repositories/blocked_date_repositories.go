package repositories

import (
	"context"
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
)

// BlockedDateReader defines read operations for blackout dates.
type BlockedDateReader interface {
	// FindActiveBlockByDate retrieves the active blackout for a calendar date,
	// or apperrors.ErrNotFound when the date is not blocked.
	FindActiveBlockByDate(ctx context.Context, date time.Time) (*domain.BlockedDate, error)

	// FindBlockedDateByID retrieves a specific blackout row.
	FindBlockedDateByID(ctx context.Context, blockedDateID int64) (*domain.BlockedDate, error)

	// ListBlockedDates retrieves all blackout rows, newest first.
	ListBlockedDates(ctx context.Context) ([]domain.BlockedDate, error)
}

// BlockedDateWriter defines write operations for blackout dates.
type BlockedDateWriter interface {
	// SaveBlockedDate inserts a new blackout plus its audit entry and returns
	// the assigned identifier.
	SaveBlockedDate(ctx context.Context, block domain.BlockedDate, audit domain.AuditLog) (int64, error)

	// UpdateBlockedDate persists status and remark changes plus the audit
	// entry.
	UpdateBlockedDate(ctx context.Context, block domain.BlockedDate, audit domain.AuditLog) error
}

// BlockedDateRepositoryFacade combines all blocked date repository interfaces.
type BlockedDateRepositoryFacade interface {
	BlockedDateReader
	BlockedDateWriter
}
