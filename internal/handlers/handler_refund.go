package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/aquaverde/resort_backend/internal/dto"
	"github.com/aquaverde/resort_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// refundHandler handles HTTP requests related to refunds. Issuing a refund
// happens through the nested booking and public entry routes; this handler
// covers inspection and follow-up updates.
type refundHandler struct {
	refundService portssvc.RefundSvcFacade
}

// registerRefundRoutes registers routes related to refunds.
func registerRefundRoutes(rg *gin.RouterGroup, rs portssvc.RefundSvcFacade) {
	h := &refundHandler{refundService: rs}

	refunds := rg.Group("/refunds")
	{
		refunds.GET("", h.listRefunds)
		refunds.GET("/:id", h.getRefund)
		refunds.PUT("/:id", h.updateRefund)
	}
}

// listRefunds godoc
// @Summary List refunds
// @Tags refunds
// @Produce json
// @Success 200 {array} dto.RefundResponse
// @Security BearerAuth
// @Router /refunds [get]
func (h *refundHandler) listRefunds(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	refunds, err := h.refundService.ListRefunds(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListRefundResponse(refunds))
}

// getRefund godoc
// @Summary Get a refund by ID
// @Description Retrieves a refund with its per-payment allocations
// @Tags refunds
// @Produce json
// @Param id path int true "Refund ID"
// @Success 200 {object} dto.RefundResponse
// @Failure 404 {object} dto.ErrorResponse "Refund not found"
// @Security BearerAuth
// @Router /refunds/{id} [get]
func (h *refundHandler) getRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	refundID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	refund, allocations, err := h.refundService.GetRefundByID(c.Request.Context(), refundID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRefundResponse(refund, allocations))
}

// updateRefund godoc
// @Summary Update a refund
// @Description Updates remarks, acknowledgement, or completes a pending refund
// @Tags refunds
// @Accept json
// @Produce json
// @Param id path int true "Refund ID"
// @Param refund body dto.UpdateRefundRequest true "Fields to update"
// @Success 200 {object} dto.RefundResponse
// @Failure 400 {object} dto.ErrorResponse "Illegal status change"
// @Failure 404 {object} dto.ErrorResponse "Refund not found"
// @Security BearerAuth
// @Router /refunds/{id} [put]
func (h *refundHandler) updateRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	refundID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	refund, err := h.refundService.UpdateRefund(c.Request.Context(), refundID, req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Refund updated", slog.Int64("refund_id", refundID))
	c.JSON(http.StatusOK, dto.ToRefundResponse(refund, nil))
}
