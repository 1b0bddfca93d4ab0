package models

import (
	"time"
)

// Enrollment links a student to a course
type Enrollment struct {
	UserID    string    `json:"user_id" gorm:"primaryKey;type:uuid"`
	CourseID  string    `json:"course_id" gorm:"primaryKey;type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	// Relationships
	User   User   `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Course Course `json:"-" gorm:"foreignKey:CourseID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Enrollment model
func (Enrollment) TableName() string {
	return "enrollments"
}

// EnrollmentResponse is the enrollment view returned to students
type EnrollmentResponse struct {
	CourseTitle    string    `json:"course_title"`
	CourseCode     string    `json:"course_code"`
	CourseDuration int       `json:"course_duration"`
	CreatedAt      time.Time `json:"created_at"`
}
