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

// publicEntryHandler handles HTTP requests related to public (day-use) entries.
type publicEntryHandler struct {
	publicEntryService portssvc.PublicEntrySvcFacade
	paymentService     portssvc.PaymentSvcFacade
	refundService      portssvc.RefundSvcFacade
}

// registerPublicEntryRoutes registers routes related to public entries,
// including the nested payment and refund routes.
func registerPublicEntryRoutes(rg *gin.RouterGroup, pes portssvc.PublicEntrySvcFacade, ps portssvc.PaymentSvcFacade, rs portssvc.RefundSvcFacade) {
	h := &publicEntryHandler{publicEntryService: pes, paymentService: ps, refundService: rs}

	entries := rg.Group("/public-entries")
	{
		entries.POST("", h.createPublicEntry)
		entries.GET("", h.listPublicEntries)
		entries.GET("/:id", h.getPublicEntry)
		entries.PUT("/:id", h.updatePublicEntry)
		entries.POST("/:id/status", h.setPublicEntryStatus)
		entries.GET("/:id/payments", h.listPublicEntryPayments)
		entries.POST("/:id/payments", h.recordPublicEntryPayment)
		entries.POST("/:id/refunds", h.issuePublicEntryRefund)
	}
}

// createPublicEntry godoc
// @Summary Create a new public entry
// @Description Creates a day-use entry priced from the active rate table after the conflict check passes
// @Tags public-entries
// @Accept json
// @Produce json
// @Param entry body dto.CreatePublicEntryRequest true "Public entry details"
// @Success 201 {object} dto.PublicEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.ErrorResponse "Date conflict"
// @Failure 422 {object} dto.ErrorResponse "No active rate"
// @Security BearerAuth
// @Router /public-entries [post]
func (h *publicEntryHandler) createPublicEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePublicEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.publicEntryService.CreatePublicEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Public entry created", slog.Int64("public_entry_id", entry.PublicEntryID))
	c.JSON(http.StatusCreated, dto.ToPublicEntryResponse(entry))
}

// listPublicEntries godoc
// @Summary List public entries
// @Tags public-entries
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListPublicEntriesResponse
// @Security BearerAuth
// @Router /public-entries [get]
func (h *publicEntryHandler) listPublicEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	limit, nextToken := listParams(c)

	resp, err := h.publicEntryService.ListPublicEntries(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getPublicEntry godoc
// @Summary Get a public entry by ID
// @Tags public-entries
// @Produce json
// @Param id path int true "Public Entry ID"
// @Success 200 {object} dto.PublicEntryResponse
// @Failure 404 {object} dto.ErrorResponse "Public entry not found"
// @Security BearerAuth
// @Router /public-entries/{id} [get]
func (h *publicEntryHandler) getPublicEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	publicEntryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.publicEntryService.GetPublicEntryByID(c.Request.Context(), publicEntryID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPublicEntryResponse(entry))
}

// updatePublicEntry godoc
// @Summary Update a public entry
// @Description Updates entry fields; changing counts, mode, or discount reprices the entry
// @Tags public-entries
// @Accept json
// @Produce json
// @Param id path int true "Public Entry ID"
// @Param entry body dto.UpdatePublicEntryRequest true "Fields to update"
// @Success 200 {object} dto.PublicEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Public entry not found"
// @Failure 409 {object} dto.ErrorResponse "Date conflict"
// @Security BearerAuth
// @Router /public-entries/{id} [put]
func (h *publicEntryHandler) updatePublicEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	publicEntryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePublicEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.publicEntryService.UpdatePublicEntry(c.Request.Context(), publicEntryID, req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPublicEntryResponse(entry))
}

// setPublicEntryStatus godoc
// @Summary Transition a public entry's lifecycle status
// @Description Applies a lifecycle transition; a natural disaster cancellation of a paid entry issues the refund atomically
// @Tags public-entries
// @Accept json
// @Produce json
// @Param id path int true "Public Entry ID"
// @Param transition body dto.SetReservationStatusRequest true "Target status and transition data"
// @Success 200 {object} dto.PublicEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Illegal transition or missing data"
// @Failure 404 {object} dto.ErrorResponse "Public entry not found"
// @Failure 409 {object} dto.ErrorResponse "Conflict or duplicate refund"
// @Security BearerAuth
// @Router /public-entries/{id}/status [post]
func (h *publicEntryHandler) setPublicEntryStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	publicEntryID, ok := parseIDParam(c, "id")
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

	entry, err := h.publicEntryService.SetPublicEntryStatus(c.Request.Context(), publicEntryID, req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Public entry status changed",
		slog.Int64("public_entry_id", publicEntryID),
		slog.String("status", string(entry.Status)))
	c.JSON(http.StatusOK, dto.ToPublicEntryResponse(entry))
}

// listPublicEntryPayments godoc
// @Summary List payments for a public entry
// @Tags public-entries
// @Produce json
// @Param id path int true "Public Entry ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} dto.ErrorResponse "Public entry not found"
// @Security BearerAuth
// @Router /public-entries/{id}/payments [get]
func (h *publicEntryHandler) listPublicEntryPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	publicEntryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPaymentsForReservation(c.Request.Context(), domain.PublicEntryRef(publicEntryID))
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentResponse(payments))
}

// recordPublicEntryPayment godoc
// @Summary Record a payment against a public entry
// @Tags public-entries
// @Accept json
// @Produce json
// @Param id path int true "Public Entry ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid amount or closed entry"
// @Failure 404 {object} dto.ErrorResponse "Public entry not found"
// @Security BearerAuth
// @Router /public-entries/{id}/payments [post]
func (h *publicEntryHandler) recordPublicEntryPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	publicEntryID, ok := parseIDParam(c, "id")
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

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), domain.PublicEntryRef(publicEntryID), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// issuePublicEntryRefund godoc
// @Summary Issue a refund against a public entry
// @Tags public-entries
// @Accept json
// @Produce json
// @Param id path int true "Public Entry ID"
// @Param refund body dto.IssueRefundRequest true "Refund details"
// @Success 201 {object} dto.RefundResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Public entry not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate refund"
// @Failure 422 {object} dto.ErrorResponse "No valid payments"
// @Security BearerAuth
// @Router /public-entries/{id}/refunds [post]
func (h *publicEntryHandler) issuePublicEntryRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	publicEntryID, ok := parseIDParam(c, "id")
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

	refund, err := h.refundService.IssueRefund(c.Request.Context(), domain.PublicEntryRef(publicEntryID), req, userID)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Refund issued for public entry",
		slog.Int64("public_entry_id", publicEntryID),
		slog.Int64("refund_id", refund.RefundID))
	c.JSON(http.StatusCreated, dto.ToRefundResponse(refund, nil))
}
