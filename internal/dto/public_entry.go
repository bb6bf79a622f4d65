package dto

import (
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePublicEntryRequest defines the data needed to create a day-use entry.
// The price is computed from the active rate table, not supplied by the caller.
type CreatePublicEntryRequest struct {
	GuestName       string          `json:"guestName" binding:"required"`
	ContactNumber   string          `json:"contactNumber" binding:"required"`
	Email           string          `json:"email" binding:"omitempty,email"`
	EntryDate       string          `json:"entryDate" binding:"required,datetime=2006-01-02"`
	Mode            domain.TimeMode `json:"mode" binding:"required,oneof=DAY_TIME NIGHT_TIME"`
	AdultCount      int             `json:"adultCount" binding:"min=0"`
	KidCount        int             `json:"kidCount" binding:"min=0"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// UpdatePublicEntryRequest defines the fields allowed for updating a public
// entry. Changing counts or discount reprices the entry; changing date or mode
// re-runs the conflict check.
type UpdatePublicEntryRequest struct {
	GuestName       *string          `json:"guestName"`
	ContactNumber   *string          `json:"contactNumber"`
	Email           *string          `json:"email" binding:"omitempty,email"`
	EntryDate       *string          `json:"entryDate" binding:"omitempty,datetime=2006-01-02"`
	Mode            *domain.TimeMode `json:"mode" binding:"omitempty,oneof=DAY_TIME NIGHT_TIME"`
	AdultCount      *int             `json:"adultCount" binding:"omitempty,min=0"`
	KidCount        *int             `json:"kidCount" binding:"omitempty,min=0"`
	DiscountPercent *decimal.Decimal `json:"discountPercent"`
}

// PublicEntryResponse defines the data returned for a public entry.
type PublicEntryResponse struct {
	PublicEntryID    int64                    `json:"publicEntryID"`
	GuestName        string                   `json:"guestName"`
	ContactNumber    string                   `json:"contactNumber"`
	Email            string                   `json:"email"`
	EntryDate        string                   `json:"entryDate"`
	Mode             domain.TimeMode          `json:"mode"`
	AdultCount       int                      `json:"adultCount"`
	KidCount         int                      `json:"kidCount"`
	AdultRateID      int64                    `json:"adultRateID"`
	KidRateID        int64                    `json:"kidRateID"`
	DiscountPercent  decimal.Decimal          `json:"discountPercent"`
	Status           domain.ReservationStatus `json:"status"`
	TotalAmount      decimal.Decimal          `json:"totalAmount"`
	AmountPaid       decimal.Decimal          `json:"amountPaid"`
	RemainingBalance decimal.Decimal          `json:"remainingBalance"`
	PaymentStatus    domain.PaymentStatus     `json:"paymentStatus"`
	CancelCategory   *domain.CancelCategory   `json:"cancelCategory,omitempty"`
	CancelReason     string                   `json:"cancelReason,omitempty"`
	CreatedAt        time.Time                `json:"createdAt"`
	LastUpdatedAt    time.Time                `json:"lastUpdatedAt"`
}

// ListPublicEntriesResponse wraps a page of public entries with the next
// pagination token.
type ListPublicEntriesResponse struct {
	PublicEntries []PublicEntryResponse `json:"publicEntries"`
	NextToken     *string               `json:"nextToken,omitempty"`
}

// ToPublicEntryResponse converts a domain.PublicEntry to its response DTO.
func ToPublicEntryResponse(p *domain.PublicEntry) PublicEntryResponse {
	return PublicEntryResponse{
		PublicEntryID:    p.PublicEntryID,
		GuestName:        p.GuestName,
		ContactNumber:    p.ContactNumber,
		Email:            p.Email,
		EntryDate:        p.EntryDate.Format(DateLayout),
		Mode:             p.Mode,
		AdultCount:       p.AdultCount,
		KidCount:         p.KidCount,
		AdultRateID:      p.AdultRateID,
		KidRateID:        p.KidRateID,
		DiscountPercent:  p.DiscountPercent,
		Status:           p.Status,
		TotalAmount:      p.TotalAmount,
		AmountPaid:       p.AmountPaid,
		RemainingBalance: p.RemainingBalance,
		PaymentStatus:    p.PaymentStatus,
		CancelCategory:   p.CancelCategory,
		CancelReason:     p.CancelReason,
		CreatedAt:        p.CreatedAt,
		LastUpdatedAt:    p.LastUpdatedAt,
	}
}

// ToListPublicEntriesResponse converts domain public entries to the list
// response DTO.
func ToListPublicEntriesResponse(entries []domain.PublicEntry, nextToken *string) ListPublicEntriesResponse {
	res := make([]PublicEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToPublicEntryResponse(&entries[i])
	}
	return ListPublicEntriesResponse{PublicEntries: res, NextToken: nextToken}
}
