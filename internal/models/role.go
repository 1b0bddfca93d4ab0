package models

import (
	"time"
)

// Role names seeded at startup.
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Role represents a role in the system (student, instructor, admin)
type Role struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"type:varchar(50);not null;unique;index" example:"student"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Role model
func (Role) TableName() string {
	return "roles"
}
