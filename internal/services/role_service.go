package services

import (
	"errors"

	"github.com/edulinkhq/enroll-backend/internal/apperrors"
	"github.com/edulinkhq/enroll-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RoleStore is the role persistence consumed by RoleService
type RoleStore interface {
	Create(role *models.Role) error
	GetByName(name string) (*models.Role, error)
}

// RoleUserStore is the slice of account persistence needed for role assignment
type RoleUserStore interface {
	GetByID(id string) (*models.User, error)
	Update(user *models.User) error
}

type RoleService struct {
	roles RoleStore
	users RoleUserStore
}

func NewRoleService(roles RoleStore, users RoleUserStore) *RoleService {
	return &RoleService{roles: roles, users: users}
}

// EnsureDefaultRoles creates the student, instructor and admin roles if missing
func (s *RoleService) EnsureDefaultRoles() error {
	for _, name := range []string{models.RoleStudent, models.RoleInstructor, models.RoleAdmin} {
		_, err := s.roles.GetByName(name)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return serverErr(err, "failed to check role")
		}
		if err := s.roles.Create(&models.Role{Name: name}); err != nil {
			return serverErr(err, "failed to create role")
		}
		logrus.Infof("Created default role %q", name)
	}
	return nil
}

// AssignRole moves a user to the named role
func (s *RoleService) AssignRole(userID, roleName string) (*models.User, error) {
	role, err := s.roles.GetByName(roleName)
	if err != nil {
		return nil, serverErr(err, "failed to resolve role")
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, serverErr(err, "failed to load user")
	}

	user.RoleID = role.ID
	user.Role = *role
	if err := s.users.Update(user); err != nil {
		return nil, serverErr(err, "failed to assign role")
	}

	logrus.Infof("User %s assigned role %q", userID, roleName)
	return user, nil
}
