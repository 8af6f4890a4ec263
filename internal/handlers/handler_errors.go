package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saldohq/saldo-backend/internal/apperrors"
)

// respondError maps the domain error taxonomy onto HTTP status codes. Every
// domain error is expected and recoverable; anything outside the taxonomy is
// an infrastructure failure and surfaces as a 500 without detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateCode):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidStateTransition),
		errors.Is(err, apperrors.ErrAlreadyReversed),
		errors.Is(err, apperrors.ErrAlreadyMatched),
		errors.Is(err, apperrors.ErrAlreadyPaid),
		errors.Is(err, apperrors.ErrAccountTypeLocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidLine),
		errors.Is(err, apperrors.ErrEmptyEntry),
		errors.Is(err, apperrors.ErrUnbalanced),
		errors.Is(err, apperrors.ErrInvoiceNotPostable),
		errors.Is(err, apperrors.ErrNotACreditTransaction),
		errors.Is(err, apperrors.ErrNotMatched):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConfiguration):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
