package handlers

import (
	"errors"
	"net/http"

	"project-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// handleServiceError translates domain failures into HTTP responses.
// Validation and state violations come back as field-level error maps so
// the client can re-render the form; everything unexpected is logged and
// hidden behind a 500.
func handleServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var stateErr *services.StateError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{validationErr.Field: validationErr.Message},
		})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": gin.H{"task": stateErr.Message},
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict"})
	default:
		log.Error().Err(err).
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
