package repositories

import (
	"context"

	"github.com/aquaverde/resort_backend/internal/core/domain"
)

// RateReader defines read operations for public entry rates.
type RateReader interface {
	// FindRateByID retrieves a specific rate by its identifier.
	FindRateByID(ctx context.Context, rateID int64) (*domain.PublicEntryRate, error)

	// FindActiveRate retrieves the single active rate for a (category, mode)
	// pair, or apperrors.ErrNotFound if none is active.
	FindActiveRate(ctx context.Context, category domain.RateCategory, mode domain.TimeMode) (*domain.PublicEntryRate, error)

	// FindActiveRates retrieves every active rate for a (category, mode) pair.
	// More than one result indicates a violated exclusivity invariant that the
	// next activation repairs.
	FindActiveRates(ctx context.Context, category domain.RateCategory, mode domain.TimeMode) ([]domain.PublicEntryRate, error)

	// FindInactiveRates retrieves inactive rates for a (category, mode) pair,
	// most recently created first. Used for fallback promotion.
	FindInactiveRates(ctx context.Context, category domain.RateCategory, mode domain.TimeMode) ([]domain.PublicEntryRate, error)

	// ListRates retrieves all rates.
	ListRates(ctx context.Context) ([]domain.PublicEntryRate, error)
}

// RateWriter defines write operations for public entry rates. Activation,
// deactivation and deletion are composite operations that must flip sibling
// rows and write their audit entries inside one database transaction.
type RateWriter interface {
	// SaveRate inserts a new rate plus its audit entry and returns the
	// assigned identifier.
	SaveRate(ctx context.Context, rate domain.PublicEntryRate, audit domain.AuditLog) (int64, error)

	// ActivateRate deactivates the listed sibling rows, activates the target,
	// and writes the supplied audit entries, all in one transaction.
	ActivateRate(ctx context.Context, rateID int64, deactivateIDs []int64, audits []domain.AuditLog, updatedBy string) error

	// DeactivateRate deactivates the target and, when promoteRateID is set,
	// activates the promoted fallback row in the same transaction.
	DeactivateRate(ctx context.Context, rateID int64, promoteRateID *int64, audits []domain.AuditLog, updatedBy string) error

	// DeleteRate removes the target and, when promoteRateID is set, activates
	// the promoted fallback row in the same transaction.
	DeleteRate(ctx context.Context, rateID int64, promoteRateID *int64, audits []domain.AuditLog, updatedBy string) error
}

// RateRepositoryFacade combines all rate repository interfaces.
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
