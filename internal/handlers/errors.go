package handlers

import (
	"errors"
	"net/http"

	"github.com/edulinkhq/enroll-backend/internal/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError maps service error kinds to HTTP statuses. Server errors are
// reported with a generic message; the cause stays in logs and sentry.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAuthentication),
		errors.Is(err, apperrors.ErrCredential),
		errors.Is(err, apperrors.ErrUserInactive):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAuthorization):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUserExists),
		errors.Is(err, apperrors.ErrCourseExists),
		errors.Is(err, apperrors.ErrEnrollmentExists),
		errors.Is(err, apperrors.ErrCourseFull):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrCourseNotFound),
		errors.Is(err, apperrors.ErrEnrollmentNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrServer.Error()})
	}
}
