package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uspireit-code/uspire-ledger/internal/apperrors"
	"github.com/uspireit-code/uspire-ledger/internal/core/services"
)

// respondServiceError maps a service error to an HTTP status and writes the
// JSON error body. Typed business errors keep their message; anything else is
// hidden behind a generic 500.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
	case errors.Is(err, apperrors.ErrForbidden),
		errors.Is(err, apperrors.ErrSoDViolation),
		errors.Is(err, services.ErrNotCreator):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidStateTransition),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, services.ErrAlreadyReversed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPeriodClosed),
		errors.Is(err, apperrors.ErrNoPeriodForDate),
		errors.Is(err, apperrors.ErrCutoverViolation),
		errors.Is(err, apperrors.ErrBudgetBlocked),
		errors.Is(err, apperrors.ErrBudgetJustificationRequired),
		errors.Is(err, apperrors.ErrLegacyMissingDimensions):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrDescriptionMissing),
		errors.Is(err, services.ErrReasonMissing):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
