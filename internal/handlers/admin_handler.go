package handlers

import (
	"fmt"
	"net/http"

	"github.com/edulinkhq/enroll-backend/internal/models"
	"github.com/edulinkhq/enroll-backend/internal/services"
	"github.com/edulinkhq/enroll-backend/internal/services/excel"
	"github.com/edulinkhq/enroll-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	userService       *services.UserService
	courseService     *services.CourseService
	enrollmentService *services.EnrollmentService
	roleService       *services.RoleService
	rosterService     *excel.RosterService
}

func NewAdminHandler(
	userService *services.UserService,
	courseService *services.CourseService,
	enrollmentService *services.EnrollmentService,
	roleService *services.RoleService,
	rosterService *excel.RosterService) *AdminHandler {
	return &AdminHandler{
		userService:       userService,
		courseService:     courseService,
		enrollmentService: enrollmentService,
		roleService:       roleService,
		rosterService:     rosterService,
	}
}

// GetStudents godoc
// @Summary List all students
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name search"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/students [get]
func (h *AdminHandler) GetStudents(c *gin.Context) {
	h.listUsersByRole(c, models.RoleStudent, "students")
}

// GetInstructors godoc
// @Summary List all instructors
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Name search"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/instructors [get]
func (h *AdminHandler) GetInstructors(c *gin.Context) {
	h.listUsersByRole(c, models.RoleInstructor, "instructors")
}

func (h *AdminHandler) listUsersByRole(c *gin.Context, role, key string) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	users, total, err := h.userService.GetUsersByRole(role, page, pageSize, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		key:          users,
		"pagination": utils.CalculatePaginationInfo(total, page, pageSize),
	})
}

// GetCourses godoc
// @Summary List all courses including inactive ones
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param q query string false "Title search"
// @Param is_active query bool false "Filter by active flag"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/courses [get]
func (h *AdminHandler) GetCourses(c *gin.Context) {
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

// GetEnrollments godoc
// @Summary List all enrollments
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/admin/enrollments [get]
func (h *AdminHandler) GetEnrollments(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	enrollments, total, err := h.enrollmentService.GetAllEnrollments(page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"enrollments": enrollments,
		"pagination":  utils.CalculatePaginationInfo(total, page, pageSize),
	})
}

// GetCourseEnrollments godoc
// @Summary List students enrolled in a course
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/courses/{id}/enrollments [get]
func (h *AdminHandler) GetCourseEnrollments(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	students, total, err := h.enrollmentService.GetCourseStudents(c.Param("id"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"students":   students,
		"pagination": utils.CalculatePaginationInfo(total, page, pageSize),
	})
}

// AssignAdminRole godoc
// @Summary Assign the admin role to a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.UserResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/users/{id}/assign-admin-role [patch]
func (h *AdminHandler) AssignAdminRole(c *gin.Context) {
	h.assignRole(c, models.RoleAdmin)
}

// AssignInstructorRole godoc
// @Summary Assign the instructor role to a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.UserResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/users/{id}/assign-instructor-role [patch]
func (h *AdminHandler) AssignInstructorRole(c *gin.Context) {
	h.assignRole(c, models.RoleInstructor)
}

func (h *AdminHandler) assignRole(c *gin.Context, role string) {
	user, err := h.roleService.AssignRole(c.Param("id"), role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// ExportCourseRoster godoc
// @Summary Download a course roster as an Excel workbook
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path string true "Course ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/admin/courses/{id}/roster [get]
func (h *AdminHandler) ExportCourseRoster(c *gin.Context) {
	file, filename, err := h.rosterService.ExportCourseRoster(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}
