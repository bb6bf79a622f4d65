package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/aquaverde/resort_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles payment routes not nested under a reservation.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// registerPaymentRoutes registers routes related to payments.
func registerPaymentRoutes(rg *gin.RouterGroup, ps portssvc.PaymentSvcFacade) {
	h := &paymentHandler{paymentService: ps}

	payments := rg.Group("/payments")
	{
		payments.POST("/:id/void", h.voidPayment)
	}
}

// voidPayment godoc
// @Summary Void a payment
// @Description Marks the payment voided and reverses its effect on the reservation's balances
// @Tags payments
// @Produce json
// @Param id path int true "Payment ID"
// @Success 204 "Voided"
// @Failure 400 {object} dto.ErrorResponse "Already voided or closed reservation"
// @Failure 404 {object} dto.ErrorResponse "Payment not found"
// @Security BearerAuth
// @Router /payments/{id}/void [post]
func (h *paymentHandler) voidPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.paymentService.VoidPayment(c.Request.Context(), paymentID, userID); err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Payment voided", slog.Int64("payment_id", paymentID))
	c.Status(http.StatusNoContent)
}
