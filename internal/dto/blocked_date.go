package dto

import (
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
)

// CreateBlockedDateRequest defines the data needed to block a calendar date.
type CreateBlockedDateRequest struct {
	Date     string                `json:"date" binding:"required,datetime=2006-01-02"`
	Category domain.CancelCategory `json:"category" binding:"required,oneof=NATURAL_DISASTER OTHERS MAINTENANCE HOLIDAY INTERNAL_USE"`
	Remarks  string                `json:"remarks"`
}

// BlockedDateResponse defines the data returned for a blackout date.
type BlockedDateResponse struct {
	BlockedDateID int64                    `json:"blockedDateID"`
	Date          string                   `json:"date"`
	Category      domain.CancelCategory    `json:"category"`
	Status        domain.BlockedDateStatus `json:"status"`
	Remarks       string                   `json:"remarks,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
}

// ToBlockedDateResponse converts a domain.BlockedDate to its response DTO.
func ToBlockedDateResponse(b *domain.BlockedDate) BlockedDateResponse {
	return BlockedDateResponse{
		BlockedDateID: b.BlockedDateID,
		Date:          b.Date.Format(DateLayout),
		Category:      b.Category,
		Status:        b.Status,
		Remarks:       b.Remarks,
		CreatedAt:     b.CreatedAt,
	}
}

// ToListBlockedDateResponse converts domain blocked dates to response DTOs.
func ToListBlockedDateResponse(blocks []domain.BlockedDate) []BlockedDateResponse {
	res := make([]BlockedDateResponse, len(blocks))
	for i := range blocks {
		res[i] = ToBlockedDateResponse(&blocks[i])
	}
	return res
}
