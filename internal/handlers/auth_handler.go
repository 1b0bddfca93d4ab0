package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/edulinkhq/enroll-backend/internal/apperrors"
	"github.com/edulinkhq/enroll-backend/internal/middleware"
	"github.com/edulinkhq/enroll-backend/internal/models"
	"github.com/edulinkhq/enroll-backend/internal/services/auth"

	"github.com/gin-gonic/gin"
)

const refreshCookieName = "refresh_token"
const refreshCookiePath = "/api/v1/auth"

type AuthHandler struct {
	authService *auth.AuthService
}

func NewAuthHandler(authService *auth.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// setRefreshCookie delivers the refresh token as an HttpOnly Lax cookie,
// Secure outside development, scoped to the auth route group.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	secure := os.Getenv("APP_ENV") == "production"
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, token, maxAge, refreshCookiePath, "", secure, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	secure := os.Getenv("APP_ENV") == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, "", secure, true)
}

// SignUp godoc
// @Summary Create user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignUpRequest true "Sign-up request"
// @Success 201 {object} models.UserResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/auth/sign-up [post]
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	user, err := h.authService.SignUp(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewUserResponse(user))
}

// SignIn godoc
// @Summary Sign in with user credentials
// @Description Returns an access token in the body and sets the refresh token as an HTTP cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignInRequest true "Sign-in request"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	_, pair, err := h.authService.SignIn(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)
	c.JSON(http.StatusCreated, models.AuthResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(pair.AccessExpiresIn.Seconds()),
	})
}

// Refresh godoc
// @Summary Rotate the refresh token
// @Description Exchanges the refresh cookie for a new token pair; the old refresh token becomes unusable
// @Tags auth
// @Produce json
// @Success 201 {object} models.AuthResponse
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/refresh [get]
func (h *AuthHandler) Refresh(c *gin.Context) {
	rawToken, err := c.Cookie(refreshCookieName)
	if err != nil {
		respondError(c, apperrors.ErrAuthentication)
		return
	}

	pair, err := h.authService.RotateSession(rawToken)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken, pair.RefreshExpiresAt)
	c.JSON(http.StatusCreated, models.AuthResponse{
		AccessToken: pair.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(pair.AccessExpiresIn.Seconds()),
	})
}

// Logout godoc
// @Summary Logout user
// @Description Revokes the refresh session and clears the cookie
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/logout [patch]
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := c.Cookie(refreshCookieName)
	if err != nil {
		respondError(c, apperrors.ErrAuthentication)
		return
	}

	if err := h.authService.Logout(rawToken); err != nil {
		respondError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// UpdatePassword godoc
// @Summary Update user password
// @Description Changes the caller's password and revokes all refresh sessions
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdatePasswordRequest true "Password change request"
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/update-password [patch]
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req models.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	userID := c.GetString("user_id")
	user, err := h.authService.UpdatePassword(userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// ResetPassword godoc
// @Summary Reset user password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "Password reset request"
// @Success 200 {object} models.UserResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/auth/reset-password [patch]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	user, err := h.authService.ResetPassword(req.Email, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// Reactivate godoc
// @Summary Reactivate user account
// @Description Restores a deactivated account with the same credentials
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.CredentialRequest true "Credentials"
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/reactivate [patch]
func (h *AuthHandler) Reactivate(c *gin.Context) {
	var req models.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	user, err := h.authService.Reactivate(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(user))
}

// Deactivate godoc
// @Summary Deactivate user account
// @Description Account will be hard-deleted after the grace period unless reactivated
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CredentialRequest true "Credentials"
// @Success 204
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/deactivate [delete]
func (h *AuthHandler) Deactivate(c *gin.Context) {
	var req models.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	// The caller can only deactivate their own account
	if user := middleware.CurrentUser(c); user.Email != req.Email {
		respondError(c, apperrors.ErrAuthorization)
		return
	}

	if err := h.authService.Deactivate(req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}

// DeleteAccount godoc
// @Summary Delete user account permanently
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CredentialRequest true "Credentials"
// @Success 204
// @Failure 401 {object} map[string]interface{}
// @Router /api/v1/auth/delete-account [delete]
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	var req models.CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if user := middleware.CurrentUser(c); user.Email != req.Email {
		respondError(c, apperrors.ErrAuthorization)
		return
	}

	if err := h.authService.DeleteAccount(req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	c.Status(http.StatusNoContent)
}
