package handlers

import (
	"net/http"

	"github.com/edulinkhq/enroll-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type EnrollmentHandler struct {
	enrollmentService *services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService *services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 201 {object} models.EnrollmentResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/courses/{id}/enrollments [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	enrollment, err := h.enrollmentService.Enroll(c.GetString("user_id"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

// Unenroll godoc
// @Summary Unenroll from a course
// @Tags enrollments
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/courses/{id}/enrollments [delete]
func (h *EnrollmentHandler) Unenroll(c *gin.Context) {
	if err := h.enrollmentService.Unenroll(c.GetString("user_id"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
