package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignUpRequest represents the sign-up request payload
type SignUpRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Nationality string `json:"nationality" binding:"required,max=50"`
	Password    string `json:"password" binding:"required,min=8"`
}

// SignInRequest represents the sign-in request payload
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response. The refresh token is
// delivered as an HTTP cookie, not in the body.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenPair carries both raw tokens from the session manager to the handler
// layer, which decides how each is delivered.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
	AccessExpiresIn  time.Duration
}

// AccessClaims are the claims carried by an access token. No jti: access
// tokens are stateless and unrevokable before natural expiry.
type AccessClaims struct {
	jwt.RegisteredClaims
}

// RefreshClaims are the claims carried by a refresh token. ID (jti) is the
// join key to the server-side RefreshToken record.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// UpdatePasswordRequest represents a request to change the caller's password
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ResetPasswordRequest represents a password reset by email
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// CredentialRequest carries email + password confirmation for sensitive
// account actions (deactivate, reactivate, delete)
type CredentialRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Nationality string    `json:"nationality"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUserResponse flattens a user and its preloaded role
func NewUserResponse(user *User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Nationality: user.Nationality,
		Role:        user.Role.Name,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
	}
}

// UserUpdateRequest represents a profile update
type UserUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
}
