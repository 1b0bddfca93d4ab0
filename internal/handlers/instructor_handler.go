package handlers

import (
	"net/http"

	"github.com/edulinkhq/enroll-backend/internal/services"
	"github.com/edulinkhq/enroll-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type InstructorHandler struct {
	courseService     *services.CourseService
	enrollmentService *services.EnrollmentService
}

func NewInstructorHandler(courseService *services.CourseService, enrollmentService *services.EnrollmentService) *InstructorHandler {
	return &InstructorHandler{courseService: courseService, enrollmentService: enrollmentService}
}

// GetMyCourses godoc
// @Summary List courses taught by the current instructor
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/users/instructor/me/courses [get]
func (h *InstructorHandler) GetMyCourses(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	courses, total, err := h.courseService.GetInstructorCourses(c.GetString("user_id"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"courses":    courses,
		"pagination": utils.CalculatePaginationInfo(total, page, pageSize),
	})
}

// GetCourseStudents godoc
// @Summary List students enrolled in one of the instructor's courses
// @Tags instructors
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /api/v1/users/instructor/me/courses/{id}/students [get]
func (h *InstructorHandler) GetCourseStudents(c *gin.Context) {
	courseID := c.Param("id")

	// Instructors may only inspect their own courses
	course, err := h.courseService.GetCourseByID(courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	if course.InstructorID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	students, total, err := h.enrollmentService.GetCourseStudents(courseID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"students":   students,
		"pagination": utils.CalculatePaginationInfo(total, page, pageSize),
	})
}
