package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/delux1000/deluxwallet/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP responses. Validation and
// business-rule failures carry their message to the client; infrastructure
// failures are reported generically and logged.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrBelowMinimum),
		errors.Is(err, apperrors.ErrCardNotEligible):
		logger.Warn("request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		logger.Warn("authentication failed")
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrLockTimeout), errors.Is(err, apperrors.ErrStoreUnavailable):
		logger.Error("backend unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable. Please try again."})
	default:
		logger.Error("unexpected error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
