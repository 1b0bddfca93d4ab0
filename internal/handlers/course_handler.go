package handlers

import (
	"net/http"

	"github.com/edulinkhq/enroll-backend/internal/models"
	"github.com/edulinkhq/enroll-backend/internal/services"
	"github.com/edulinkhq/enroll-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type CourseHandler struct {
	courseService *services.CourseService
}

func NewCourseHandler(courseService *services.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// ListCourses godoc
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param q query string false "Title search"
// @Param sort query string false "Sort column"
// @Param order query string false "asc or desc"
// @Param is_active query bool false "Filter by active flag" default(true)
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))
	isActive := c.DefaultQuery("is_active", "true") == "true"

	courses, total, err := h.courseService.GetCourses(c.Query("q"), c.Query("sort"), c.Query("order"), isActive, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"courses":    courses,
		"pagination": utils.CalculatePaginationInfo(total, page, pageSize),
	})
}

// GetCourse godoc
// @Summary Get a course by ID
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} models.CourseResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/courses/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.courseService.GetCourseByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCourseResponse(course))
}

// CreateCourse godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CourseCreateRequest true "Course"
// @Success 201 {object} models.CourseResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req models.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	course, err := h.courseService.CreateCourse(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.NewCourseResponse(course))
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param request body models.CourseUpdateRequest true "Course update"
// @Success 200 {object} models.CourseResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req models.CourseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	course, err := h.courseService.UpdateCourse(c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCourseResponse(course))
}

// DeactivateCourse godoc
// @Summary Deactivate a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} models.CourseResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/courses/{id}/deactivate [patch]
func (h *CourseHandler) DeactivateCourse(c *gin.Context) {
	course, err := h.courseService.SetCourseActive(c.Param("id"), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCourseResponse(course))
}

// ReactivateCourse godoc
// @Summary Reactivate a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {object} models.CourseResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/courses/{id}/reactivate [patch]
func (h *CourseHandler) ReactivateCourse(c *gin.Context) {
	course, err := h.courseService.SetCourseActive(c.Param("id"), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCourseResponse(course))
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags courses
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseService.DeleteCourse(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
