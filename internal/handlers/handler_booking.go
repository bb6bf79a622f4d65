package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aquaverde/resort_backend/internal/core/domain"
	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/aquaverde/resort_backend/internal/dto"
	"github.com/aquaverde/resort_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// bookingHandler handles HTTP requests related to bookings.
type bookingHandler struct {
	bookingService portssvc.BookingSvcFacade
	paymentService portssvc.PaymentSvcFacade
	refundService  portssvc.RefundSvcFacade
}

// registerBookingRoutes registers routes related to bookings, including the
// nested payment and refund routes.
func registerBookingRoutes(rg *gin.RouterGroup, bs portssvc.BookingSvcFacade, ps portssvc.PaymentSvcFacade, rs portssvc.RefundSvcFacade) {
	h := &bookingHandler{bookingService: bs, paymentService: ps, refundService: rs}

	bookings := rg.Group("/bookings")
	{
		bookings.POST("", h.createBooking)
		bookings.GET("", h.listBookings)
		bookings.GET("/:id", h.getBooking)
		bookings.PUT("/:id", h.updateBooking)
		bookings.POST("/:id/status", h.setBookingStatus)
		bookings.GET("/:id/payments", h.listBookingPayments)
		bookings.POST("/:id/payments", h.recordBookingPayment)
		bookings.POST("/:id/refunds", h.issueBookingRefund)
	}
}

// createBooking godoc
// @Summary Create a new booking
// @Description Creates a booking after the date conflict check passes
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body dto.CreateBookingRequest true "Booking details"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Date conflict"
// @Security BearerAuth
// @Router /bookings [post]
func (h *bookingHandler) createBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Booking created", slog.Int64("booking_id", booking.BookingID))
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// listBookings godoc
// @Summary List bookings
// @Description Retrieves a page of bookings ordered by check-in date
// @Tags bookings
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListBookingsResponse
// @Security BearerAuth
// @Router /bookings [get]
func (h *bookingHandler) listBookings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, nextToken := listParams(c)

	resp, err := h.bookingService.ListBookings(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getBooking godoc
// @Summary Get a booking by ID
// @Tags bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} dto.ErrorResponse "Booking not found"
// @Security BearerAuth
// @Router /bookings/{id} [get]
func (h *bookingHandler) getBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBookingByID(c.Request.Context(), bookingID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// updateBooking godoc
// @Summary Update a booking
// @Description Updates booking fields; changing date or mode re-runs the conflict check
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param booking body dto.UpdateBookingRequest true "Fields to update"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Booking not found"
// @Failure 409 {object} dto.ErrorResponse "Date conflict"
// @Security BearerAuth
// @Router /bookings/{id} [put]
func (h *bookingHandler) updateBooking(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), bookingID, req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// setBookingStatus godoc
// @Summary Transition a booking's lifecycle status
// @Description Applies a lifecycle transition; cancellation of a paid booking issues the refund atomically
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param transition body dto.SetReservationStatusRequest true "Target status and transition data"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} dto.ErrorResponse "Illegal transition or missing data"
// @Failure 404 {object} dto.ErrorResponse "Booking not found"
// @Failure 409 {object} dto.ErrorResponse "Conflict or duplicate refund"
// @Security BearerAuth
// @Router /bookings/{id}/status [post]
func (h *bookingHandler) setBookingStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.SetReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.SetBookingStatus(c.Request.Context(), bookingID, req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Booking status changed",
		slog.Int64("booking_id", bookingID),
		slog.String("status", string(booking.Status)))
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// listBookingPayments godoc
// @Summary List payments for a booking
// @Tags bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} dto.ErrorResponse "Booking not found"
// @Security BearerAuth
// @Router /bookings/{id}/payments [get]
func (h *bookingHandler) listBookingPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPaymentsForReservation(c.Request.Context(), domain.BookingRef(bookingID))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentResponse(payments))
}

// recordBookingPayment godoc
// @Summary Record a payment against a booking
// @Description Appends an installment and adjusts the booking's balances atomically
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount or closed booking"
// @Failure 404 {object} dto.ErrorResponse "Booking not found"
// @Security BearerAuth
// @Router /bookings/{id}/payments [post]
func (h *bookingHandler) recordBookingPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), domain.BookingRef(bookingID), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// issueBookingRefund godoc
// @Summary Issue a refund against a booking
// @Description Applies the retention policy to the booking's valid payments and cancels the booking atomically
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param refund body dto.IssueRefundRequest true "Refund details"
// @Success 201 {object} dto.RefundResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Booking not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate refund"
// @Failure 422 {object} dto.ErrorResponse "No valid payments"
// @Security BearerAuth
// @Router /bookings/{id}/refunds [post]
func (h *bookingHandler) issueBookingRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.IssueRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	refund, err := h.refundService.IssueRefund(c.Request.Context(), domain.BookingRef(bookingID), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Refund issued for booking",
		slog.Int64("booking_id", bookingID),
		slog.Int64("refund_id", refund.RefundID))
	c.JSON(http.StatusCreated, dto.ToRefundResponse(refund, nil))
}
