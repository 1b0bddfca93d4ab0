package repository

import (
	"time"

	"github.com/edulinkhq/enroll-backend/internal/models"
	"github.com/edulinkhq/enroll-backend/internal/utils"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by ID with its role preloaded
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Role").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email with its role preloaded
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Role").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Update updates a user
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete permanently removes a user
func (r *UserRepository) Delete(id string) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

// DeleteScheduled hard-deletes users whose delete_at has passed
func (r *UserRepository) DeleteScheduled() (int64, error) {
	res := r.db.Where("delete_at IS NOT NULL AND delete_at <= ?", time.Now()).Delete(&models.User{})
	return res.RowsAffected, res.Error
}

// GetByRole returns users holding the given role name, with search and pagination
func (r *UserRepository) GetByRole(roleName string, page, pageSize int, search string) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.Model(&models.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", roleName)
	if search != "" {
		query = query.Where("users.name ILIKE ?", "%"+search+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Role").
		Offset(utils.CalculateOffset(page, pageSize)).Limit(pageSize).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
