package models

import (
	"time"
)

// User represents an account on the platform. Deactivation sets DeleteAt; the
// account sweep hard-deletes the row once that timestamp has passed.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Name         string     `json:"name" gorm:"type:varchar(100);not null;index"`
	Email        string     `json:"email" gorm:"type:varchar(255);not null;unique;index"`
	Nationality  string     `json:"nationality" gorm:"type:varchar(50)"`
	PasswordHash string     `json:"-" gorm:"type:text;not null"`
	RoleID       string     `json:"role_id" gorm:"not null;index;type:uuid"`
	IsActive     bool       `json:"is_active" gorm:"default:true;index"`
	DeleteAt     *time.Time `json:"delete_at,omitempty" gorm:"index"`
	// Relationships
	Role          Role           `json:"role,omitempty" gorm:"foreignKey:RoleID;references:ID;constraint:OnDelete:RESTRICT"`
	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
