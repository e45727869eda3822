package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/microloan_ledger/internal/apperrors"
	"github.com/SscSPs/microloan_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its status code and JSON body.
// Unexpected errors are logged and reported with a generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error, failure string) {
	var (
		missing  *apperrors.MissingFieldsError
		short    *apperrors.InsufficientPaymentError
		dup      *apperrors.DuplicateError
		partial  *apperrors.PartialApplicationError
		appError *apperrors.AppError
	)

	switch {
	case errors.As(err, &partial):
		logger.Error(failure+": partially applied",
			slog.String("step", partial.Step),
			slog.String("correlation_id", partial.CorrelationID),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":         failure + ": operation was partially applied",
			"step":          partial.Step,
			"correlationId": partial.CorrelationID,
		})
	case errors.As(err, &missing):
		logger.Warn(failure, slog.Any("missing_fields", missing.Fields))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "missingFields": missing.Fields})
	case errors.As(err, &short):
		logger.Warn(failure, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"required":  short.Required,
			"supplied":  short.Supplied,
			"shortfall": short.Shortfall,
		})
	case errors.As(err, &dup):
		logger.Warn(failure, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "field": dup.Field})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn(failure, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidParameters),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrIndexOutOfRange):
		logger.Warn(failure, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrEntryAlreadySettled),
		errors.Is(err, apperrors.ErrDeleteRefused),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict):
		logger.Warn(failure, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrNoOverdueEntries):
		logger.Warn(failure, slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &appError) && appError.Code >= 400 && appError.Code < 500:
		logger.Warn(failure, slog.String("error", err.Error()))
		c.JSON(appError.Code, gin.H{"error": appError.Message})
	default:
		logger.Error(failure, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failure})
	}
}

// currentUser reads the acting user or writes a 401.
func currentUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}
