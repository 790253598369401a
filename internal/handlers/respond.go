package handlers

import (
	"errors"
	"net/http"

	"github.com/currconv/currency_conversion_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondWithError maps a service error to an HTTP response. Validation
// rejections are client errors, upstream rejections indicate the external
// rate source failed, anything unclassified is a server error. The stable
// reason code rides alongside the message when one is present.
func respondWithError(c *gin.Context, err error) {
	var rej *apperrors.Rejection
	body := gin.H{"error": err.Error()}
	if errors.As(err, &rej) {
		body = gin.H{"error": rej.Message, "reason": string(rej.Reason)}
	}

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, apperrors.ErrUpstream):
		c.JSON(http.StatusBadGateway, body)
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
