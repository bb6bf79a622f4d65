package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/aquaverde/resort_backend/internal/core/ports/services"
	"github.com/aquaverde/resort_backend/internal/dto"
	"github.com/aquaverde/resort_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to public entry rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// registerRateRoutes registers routes related to rates.
func registerRateRoutes(rg *gin.RouterGroup, rs portssvc.RateSvcFacade) {
	h := &rateHandler{rateService: rs}

	rates := rg.Group("/rates")
	{
		rates.POST("", h.createRate)
		rates.GET("", h.listRates)
		rates.GET("/:id", h.getRate)
		rates.POST("/:id/activate", h.activateRate)
		rates.POST("/:id/deactivate", h.deactivateRate)
		rates.DELETE("/:id", h.deleteRate)
	}
}

// createRate godoc
// @Summary Create a new rate
// @Description Creates a rate for a (category, mode) pair, optionally activating it immediately
// @Tags rates
// @Accept json
// @Produce json
// @Param rate body dto.CreateRateRequest true "Rate details"
// @Success 201 {object} dto.RateResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /rates [post]
func (h *rateHandler) createRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rate, err := h.rateService.CreateRate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Rate created", slog.Int64("rate_id", rate.RateID))
	c.JSON(http.StatusCreated, dto.ToRateResponse(rate))
}

// listRates godoc
// @Summary List all rates
// @Tags rates
// @Produce json
// @Success 200 {array} dto.RateResponse
// @Security BearerAuth
// @Router /rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.ListRates(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListRateResponse(rates))
}

// getRate godoc
// @Summary Get a rate by ID
// @Tags rates
// @Produce json
// @Param id path int true "Rate ID"
// @Success 200 {object} dto.RateResponse
// @Failure 404 {object} dto.ErrorResponse "Rate not found"
// @Security BearerAuth
// @Router /rates/{id} [get]
func (h *rateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rate, err := h.rateService.GetRateByID(c.Request.Context(), rateID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// activateRate godoc
// @Summary Activate a rate
// @Description Makes the rate the single active one for its (category, mode) pair
// @Tags rates
// @Produce json
// @Param id path int true "Rate ID"
// @Success 200 {object} dto.RateResponse
// @Failure 404 {object} dto.ErrorResponse "Rate not found"
// @Security BearerAuth
// @Router /rates/{id}/activate [post]
func (h *rateHandler) activateRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rate, err := h.rateService.ActivateRate(c.Request.Context(), rateID, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Rate activated", slog.Int64("rate_id", rateID))
	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// deactivateRate godoc
// @Summary Deactivate a rate
// @Description Deactivates the rate, promoting the most recent inactive sibling when one exists
// @Tags rates
// @Produce json
// @Param id path int true "Rate ID"
// @Success 204 "Deactivated"
// @Failure 400 {object} dto.ErrorResponse "Rate already inactive"
// @Failure 404 {object} dto.ErrorResponse "Rate not found"
// @Security BearerAuth
// @Router /rates/{id}/deactivate [post]
func (h *rateHandler) deactivateRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.rateService.DeactivateRate(c.Request.Context(), rateID, userID); err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Rate deactivated", slog.Int64("rate_id", rateID))
	c.Status(http.StatusNoContent)
}

// deleteRate godoc
// @Summary Delete a rate
// @Description Removes the rate, promoting a fallback sibling first when it was active
// @Tags rates
// @Produce json
// @Param id path int true "Rate ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Rate not found"
// @Security BearerAuth
// @Router /rates/{id} [delete]
func (h *rateHandler) deleteRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.rateService.DeleteRate(c.Request.Context(), rateID, userID); err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Rate deleted", slog.Int64("rate_id", rateID))
	c.Status(http.StatusNoContent)
}
