package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/aquaverde/resort_backend/internal/dto"
	"github.com/aquaverde/resort_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// blockedDateHandler handles HTTP requests related to blackout dates.
type blockedDateHandler struct {
	blockedDateService portssvc.BlockedDateSvcFacade
}

// registerBlockedDateRoutes registers routes related to blocked dates.
func registerBlockedDateRoutes(rg *gin.RouterGroup, bds portssvc.BlockedDateSvcFacade) {
	h := &blockedDateHandler{blockedDateService: bds}

	blocked := rg.Group("/blocked-dates")
	{
		blocked.POST("", h.createBlockedDate)
		blocked.GET("", h.listBlockedDates)
		blocked.POST("/:id/cancel", h.cancelBlockedDate)
	}
}

// createBlockedDate godoc
// @Summary Block a calendar date
// @Description Creates an administrative blackout that vetoes reservations on the date
// @Tags blocked-dates
// @Accept json
// @Produce json
// @Param block body dto.CreateBlockedDateRequest true "Blackout details"
// @Success 201 {object} dto.BlockedDateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Date already blocked"
// @Security BearerAuth
// @Router /blocked-dates [post]
func (h *blockedDateHandler) createBlockedDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	block, err := h.blockedDateService.CreateBlockedDate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Blocked date created",
		slog.Int64("blocked_date_id", block.BlockedDateID),
		slog.String("date", req.Date))
	c.JSON(http.StatusCreated, dto.ToBlockedDateResponse(block))
}

// listBlockedDates godoc
// @Summary List blocked dates
// @Tags blocked-dates
// @Produce json
// @Success 200 {array} dto.BlockedDateResponse
// @Security BearerAuth
// @Router /blocked-dates [get]
func (h *blockedDateHandler) listBlockedDates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	blocks, err := h.blockedDateService.ListBlockedDates(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListBlockedDateResponse(blocks))
}

// cancelBlockedDate godoc
// @Summary Cancel a blocked date
// @Description Lifts the blackout; the row stays for the audit trail
// @Tags blocked-dates
// @Produce json
// @Param id path int true "Blocked Date ID"
// @Success 204 "Cancelled"
// @Failure 400 {object} dto.ErrorResponse "Already cancelled"
// @Failure 404 {object} dto.ErrorResponse "Blocked date not found"
// @Security BearerAuth
// @Router /blocked-dates/{id}/cancel [post]
func (h *blockedDateHandler) cancelBlockedDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	blockedDateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.blockedDateService.CancelBlockedDate(c.Request.Context(), blockedDateID, userID); err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Blocked date cancelled", slog.Int64("blocked_date_id", blockedDateID))
	c.Status(http.StatusNoContent)
}
