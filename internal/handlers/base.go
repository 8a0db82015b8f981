package handlers

import (
	"errors"
	"net/http"

	"mekanlist/internal/middleware"
	"mekanlist/internal/models"
	"mekanlist/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentUser returns the session user, or nil when unauthenticated.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}

// RenderError maps the service error taxonomy onto HTTP responses. Every
// failure gets a typed body; nothing collapses into a success-shaped result.
func RenderError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var resolutionErr *services.ResolutionError
	var conflictErr *services.ConflictError
	var lookupErr *services.LookupError

	switch {
	case errors.Is(err, services.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	// ResolutionError may wrap a ValidationError, so it has to match first.
	case errors.As(err, &resolutionErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "resolution",
			"entry_index": resolutionErr.Index,
			"entry_name":  resolutionErr.Name,
			"message":     resolutionErr.Error(),
		})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation",
			"field":   validationErr.Field,
			"message": validationErr.Message,
		})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": conflictErr.Error()})
	case errors.As(err, &lookupErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": "lookup", "message": lookupErr.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal", "message": err.Error()})
	}
}
