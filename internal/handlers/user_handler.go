package handlers

import (
	"net/http"

	"github.com/edulinkhq/enroll-backend/internal/models"
	"github.com/edulinkhq/enroll-backend/internal/services"
	"github.com/edulinkhq/enroll-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService       *services.UserService
	enrollmentService *services.EnrollmentService
}

func NewUserHandler(userService *services.UserService, enrollmentService *services.EnrollmentService) *UserHandler {
	return &UserHandler{userService: userService, enrollmentService: enrollmentService}
}

// GetMe godoc
// @Summary Get current user profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMe godoc
// @Summary Update current user profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UserUpdateRequest true "Profile update"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req models.UserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	profile, err := h.userService.UpdateProfile(c.GetString("user_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetMyCourses godoc
// @Summary List courses the current user is enrolled in
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/users/me/courses [get]
func (h *UserHandler) GetMyCourses(c *gin.Context) {
	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	courses, total, err := h.enrollmentService.GetUserCourses(c.GetString("user_id"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"courses":    courses,
		"pagination": utils.CalculatePaginationInfo(total, page, pageSize),
	})
}
