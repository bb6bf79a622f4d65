package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aquaverde/resort_backend/internal/apperrors"
	"github.com/aquaverde/resort_backend/internal/dto"
	"github.com/aquaverde/resort_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status and writes the
// structured error body.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateRefund):
		logger.Warn("Duplicate refund", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE_REFUND", Message: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Reservation conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, apperrors.ErrNoValidPayments):
		logger.Warn("No valid payments", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Code: "NO_VALID_PAYMENTS", Message: err.Error()})
	case errors.Is(err, apperrors.ErrNoActiveRate):
		logger.Warn("No active rate", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Code: "NO_ACTIVE_RATE", Message: err.Error()})
	default:
		logger.Error("Internal error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "An internal error occurred"})
	}
}

// respondBindError writes the 400 response for a request body that failed
// binding.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "Invalid request format: " + err.Error()})
}

// parseIDParam parses a numeric path parameter, writing the 400 response on
// failure.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION_ERROR", Message: "Invalid " + name + " parameter"})
		return 0, false
	}
	return id, true
}

// requireUserID retrieves the authenticated user from the request context,
// writing the 401 response when missing.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok || userID == "" {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// listParams reads the limit and nextToken query parameters shared by the
// paginated listings.
func listParams(c *gin.Context) (int, *string) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	var nextToken *string
	if raw := c.Query("nextToken"); raw != "" {
		nextToken = &raw
	}
	return limit, nextToken
}
