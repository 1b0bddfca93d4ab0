package repository

import (
	"time"

	"github.com/edulinkhq/enroll-backend/internal/models"

	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create creates a new refresh token record. The token_hash unique index
// makes a digest collision an insert error, never an overwrite.
func (r *RefreshTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// GetByID retrieves a refresh token record by its jti
func (r *RefreshTokenRepository) GetByID(id string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	err := r.db.First(&token, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Update persists a status transition
func (r *RefreshTokenRepository) Update(token *models.RefreshToken) error {
	return r.db.Save(token).Error
}

// RevokeAllForUser revokes every still-valid token of a user
func (r *RefreshTokenRepository) RevokeAllForUser(userID string) error {
	now := time.Now()
	return r.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND status = ?", userID, models.TokenStatusValid).
		Updates(map[string]interface{}{"status": models.TokenStatusRevoked, "revoked_at": now}).Error
}

// DeleteStale removes records with terminal status or past expiry
func (r *RefreshTokenRepository) DeleteStale() (int64, error) {
	res := r.db.Where("status IN ? OR expires_at <= ?",
		[]models.TokenStatus{models.TokenStatusUsed, models.TokenStatusRevoked}, time.Now()).
		Delete(&models.RefreshToken{})
	return res.RowsAffected, res.Error
}

// CountValidForUser counts still-valid tokens for a user
func (r *RefreshTokenRepository) CountValidForUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND status = ?", userID, models.TokenStatusValid).
		Count(&count).Error
	return count, err
}
