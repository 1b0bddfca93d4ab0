package auth

import (
	"github.com/edulinkhq/enroll-backend/internal/models"
)

// UserStore is the account persistence the session subsystem depends on. The
// gorm repository satisfies it; tests use an in-memory fake.
type UserStore interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	EmailExists(email string) (bool, error)
	Update(user *models.User) error
	Delete(id string) error
	// DeleteScheduled hard-deletes accounts whose delete_at has passed and
	// returns the number of rows removed.
	DeleteScheduled() (int64, error)
}

// RefreshTokenStore persists refresh token records
type RefreshTokenStore interface {
	Create(token *models.RefreshToken) error
	GetByID(id string) (*models.RefreshToken, error)
	Update(token *models.RefreshToken) error
	RevokeAllForUser(userID string) error
	// DeleteStale removes records whose status is terminal or whose expiry
	// has passed and returns the number of rows removed.
	DeleteStale() (int64, error)
}

// RoleStore resolves roles by name
type RoleStore interface {
	GetByName(name string) (*models.Role, error)
}
