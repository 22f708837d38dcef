package controllers

import (
	"errors"
	"net/http"

	"CourseForge/internal/app_errors"
	"CourseForge/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses. Unknown
// errors are logged and returned as an opaque 500.
func respondError(c *gin.Context, log logger.Log, err error) {
	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrAlreadyExists),
		errors.Is(err, app_errors.ErrUniqueConstraintViolation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrAuthentication),
		errors.Is(err, app_errors.ErrTokenExpired),
		errors.Is(err, app_errors.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, app_errors.ErrNotNullViolation),
		errors.Is(err, app_errors.ErrPasswordLength):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.ErrorErr("unhandled request error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
