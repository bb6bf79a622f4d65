package dto

import (
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRateRequest defines the data needed to create a public entry rate.
// When Activate is true the new rate immediately displaces any active sibling
// for the same (category, mode).
type CreateRateRequest struct {
	Category domain.RateCategory `json:"category" binding:"required,oneof=ADULT KID"`
	Mode     domain.TimeMode     `json:"mode" binding:"required,oneof=DAY_TIME NIGHT_TIME"`
	Rate     decimal.Decimal     `json:"rate" binding:"required"`
	Activate bool                `json:"activate"`
}

// RateResponse defines the data returned for a rate.
type RateResponse struct {
	RateID        int64               `json:"rateID"`
	Category      domain.RateCategory `json:"category"`
	Mode          domain.TimeMode     `json:"mode"`
	Rate          decimal.Decimal     `json:"rate"`
	IsActive      bool                `json:"isActive"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToRateResponse converts a domain.PublicEntryRate to a RateResponse DTO.
func ToRateResponse(r *domain.PublicEntryRate) RateResponse {
	return RateResponse{
		RateID:        r.RateID,
		Category:      r.Category,
		Mode:          r.Mode,
		Rate:          r.Rate,
		IsActive:      r.IsActive,
		CreatedAt:     r.CreatedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

// ToListRateResponse converts domain rates to response DTOs.
func ToListRateResponse(rates []domain.PublicEntryRate) []RateResponse {
	res := make([]RateResponse, len(rates))
	for i := range rates {
		res[i] = ToRateResponse(&rates[i])
	}
	return res
}
