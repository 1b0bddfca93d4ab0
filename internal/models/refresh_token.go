package models

import (
	"time"
)

// TokenStatus is the lifecycle state of a refresh token record.
type TokenStatus string

const (
	TokenStatusValid   TokenStatus = "valid"
	TokenStatusUsed    TokenStatus = "used"
	TokenStatusRevoked TokenStatus = "revoked"
)

// RefreshToken tracks a refresh token server-side. ID equals the token's jti
// claim; TokenHash is a SHA-256 digest of the raw token, the raw value is
// never stored. Status moves valid -> used (rotation) or valid -> revoked
// (logout, password change, deactivation, deletion) exactly once.
type RefreshToken struct {
	ID        string      `json:"id" gorm:"primaryKey;type:uuid"`
	UserID    string      `json:"user_id" gorm:"not null;index;type:uuid"`
	TokenHash string      `json:"-" gorm:"type:varchar(64);not null;unique;index"`
	Status    TokenStatus `json:"status" gorm:"type:varchar(10);not null;default:'valid';index"`
	IssuedAt  time.Time   `json:"issued_at" gorm:"not null"`
	ExpiresAt time.Time   `json:"expires_at" gorm:"not null;index"`
	UsedAt    *time.Time  `json:"used_at,omitempty"`
	RevokedAt *time.Time  `json:"revoked_at,omitempty"`
	// Relationships
	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the RefreshToken model
func (RefreshToken) TableName() string {
	return "refresh_tokens"
}
