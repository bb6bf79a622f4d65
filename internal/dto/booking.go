package dto

import (
	"time"

	"github.com/aquaverde/resort_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBookingRequest defines the data needed to create a booking.
type CreateBookingRequest struct {
	GuestName     string          `json:"guestName" binding:"required"`
	ContactNumber string          `json:"contactNumber" binding:"required"`
	Email         string          `json:"email" binding:"omitempty,email"`
	CheckInDate   string          `json:"checkInDate" binding:"required,datetime=2006-01-02"`
	CheckOutDate  string          `json:"checkOutDate" binding:"required,datetime=2006-01-02"`
	Mode          domain.TimeMode `json:"mode" binding:"required,oneof=DAY_TIME NIGHT_TIME WHOLE_DAY"`
	TotalAmount   decimal.Decimal `json:"totalAmount" binding:"required"`
}

// UpdateBookingRequest defines the fields allowed for updating a booking.
// Pointers distinguish omitted fields from zero values.
type UpdateBookingRequest struct {
	GuestName     *string          `json:"guestName"`
	ContactNumber *string          `json:"contactNumber"`
	Email         *string          `json:"email" binding:"omitempty,email"`
	CheckInDate   *string          `json:"checkInDate" binding:"omitempty,datetime=2006-01-02"`
	CheckOutDate  *string          `json:"checkOutDate" binding:"omitempty,datetime=2006-01-02"`
	Mode          *domain.TimeMode `json:"mode" binding:"omitempty,oneof=DAY_TIME NIGHT_TIME WHOLE_DAY"`
	TotalAmount   *decimal.Decimal `json:"totalAmount"`
}

// SetReservationStatusRequest drives a lifecycle transition for a booking or a
// public entry. Cancellation carries the cancel metadata and, when a refund is
// due, the refund method details. Rescheduling carries the new slot.
type SetReservationStatusRequest struct {
	Status         domain.ReservationStatus `json:"status" binding:"required,oneof=PENDING CONFIRMED RESERVED RESCHEDULED PENDING_CANCELLATION CANCELLED COMPLETED"`
	CancelCategory *domain.CancelCategory   `json:"cancelCategory" binding:"omitempty,oneof=NATURAL_DISASTER OTHERS MAINTENANCE HOLIDAY INTERNAL_USE"`
	CancelReason   string                   `json:"cancelReason"`
	RefundMethod   *domain.PaymentMethod    `json:"refundMethod" binding:"omitempty,oneof=CASH GCASH"`
	GcashReference string                   `json:"gcashReference"`
	GcashImageURL  string                   `json:"gcashImageURL"`
	NewDate        *string                  `json:"newDate" binding:"omitempty,datetime=2006-01-02"`
	NewCheckOut    *string                  `json:"newCheckOut" binding:"omitempty,datetime=2006-01-02"`
	NewMode        *domain.TimeMode         `json:"newMode" binding:"omitempty,oneof=DAY_TIME NIGHT_TIME WHOLE_DAY"`
}

// BookingResponse defines the data returned for a booking.
type BookingResponse struct {
	BookingID        int64                    `json:"bookingID"`
	GuestName        string                   `json:"guestName"`
	ContactNumber    string                   `json:"contactNumber"`
	Email            string                   `json:"email"`
	CheckInDate      string                   `json:"checkInDate"`
	CheckOutDate     string                   `json:"checkOutDate"`
	Mode             domain.TimeMode          `json:"mode"`
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

// ListBookingsResponse wraps a page of bookings with the next pagination token.
type ListBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToBookingResponse converts a domain.Booking to a BookingResponse DTO.
func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:        b.BookingID,
		GuestName:        b.GuestName,
		ContactNumber:    b.ContactNumber,
		Email:            b.Email,
		CheckInDate:      b.CheckInDate.Format(DateLayout),
		CheckOutDate:     b.CheckOutDate.Format(DateLayout),
		Mode:             b.Mode,
		Status:           b.Status,
		TotalAmount:      b.TotalAmount,
		AmountPaid:       b.AmountPaid,
		RemainingBalance: b.RemainingBalance,
		PaymentStatus:    b.PaymentStatus,
		CancelCategory:   b.CancelCategory,
		CancelReason:     b.CancelReason,
		CreatedAt:        b.CreatedAt,
		LastUpdatedAt:    b.LastUpdatedAt,
	}
}

// ToListBookingsResponse converts domain bookings to the list response DTO.
func ToListBookingsResponse(bookings []domain.Booking, nextToken *string) ListBookingsResponse {
	res := make([]BookingResponse, len(bookings))
	for i := range bookings {
		res[i] = ToBookingResponse(&bookings[i])
	}
	return ListBookingsResponse{Bookings: res, NextToken: nextToken}
}
