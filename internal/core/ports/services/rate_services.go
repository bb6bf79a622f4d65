package services

import (
	"context"

	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/aquaverde/resort_backend/internal/dto"
)

// RateResolverSvc is the read side of the rate table consumed by public entry
// pricing.
type RateResolverSvc interface {
	// ResolveActiveRate returns the active rate for (category, mode), falling
	// back to the opposite partial mode, or apperrors.ErrNoActiveRate when
	// neither mode has an active rate.
	ResolveActiveRate(ctx context.Context, category domain.RateCategory, mode domain.TimeMode) (*domain.PublicEntryRate, error)
}

// RateSvcFacade exposes rate administration plus resolution.
type RateSvcFacade interface {
	RateResolverSvc

	CreateRate(ctx context.Context, req dto.CreateRateRequest, userID string) (*domain.PublicEntryRate, error)
	GetRateByID(ctx context.Context, rateID int64) (*domain.PublicEntryRate, error)
	ListRates(ctx context.Context) ([]domain.PublicEntryRate, error)

	// ActivateRate makes the target the single active rate for its
	// (category, mode) pair, deactivating any active siblings.
	ActivateRate(ctx context.Context, rateID int64, userID string) (*domain.PublicEntryRate, error)

	// DeactivateRate deactivates the target. When the target was active, the
	// most recently created inactive sibling for the same pair is promoted.
	DeactivateRate(ctx context.Context, rateID int64, userID string) error

	// DeleteRate removes the target, promoting a fallback sibling first when
	// the target was active.
	DeleteRate(ctx context.Context, rateID int64, userID string) error
}
