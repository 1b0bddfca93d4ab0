package services

import (
	"errors"

	"github.com/edulinkhq/enroll-backend/internal/apperrors"
	"github.com/edulinkhq/enroll-backend/internal/models"
	"github.com/edulinkhq/enroll-backend/internal/utils"

	"gorm.io/gorm"
)

// UserStore is the account persistence consumed by UserService
type UserStore interface {
	GetByID(id string) (*models.User, error)
	Update(user *models.User) error
	GetByRole(roleName string, page, pageSize int, search string) ([]models.User, int64, error)
}

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// GetProfile returns the account's public view
func (s *UserService) GetProfile(userID string) (*models.UserResponse, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, serverErr(err, "failed to load user")
	}
	resp := models.NewUserResponse(user)
	return &resp, nil
}

// UpdateProfile applies a partial profile update
func (s *UserService) UpdateProfile(userID string, req *models.UserUpdateRequest) (*models.UserResponse, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, serverErr(err, "failed to load user")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Nationality != nil {
		user.Nationality = *req.Nationality
	}

	if err := s.users.Update(user); err != nil {
		return nil, serverErr(err, "failed to update user")
	}
	resp := models.NewUserResponse(user)
	return &resp, nil
}

// GetUsersByRole lists users holding a role, with search and pagination
func (s *UserService) GetUsersByRole(roleName string, page, pageSize int, search string) ([]models.UserResponse, int64, error) {
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)

	users, total, err := s.users.GetByRole(roleName, page, pageSize, search)
	if err != nil {
		return nil, 0, serverErr(err, "failed to load users")
	}

	responses := make([]models.UserResponse, len(users))
	for i := range users {
		responses[i] = models.NewUserResponse(&users[i])
	}
	return responses, total, nil
}
