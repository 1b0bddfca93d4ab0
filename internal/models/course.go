package models

import (
	"time"
)

// Course represents a course offered on the platform
type Course struct {
	ID            string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Title         string    `json:"title" gorm:"type:varchar(100);not null;index"`
	Description   string    `json:"description" gorm:"type:varchar(255);not null"`
	Code          string    `json:"code" gorm:"type:varchar(20);not null;unique;index"`
	Capacity      int       `json:"capacity" gorm:"not null"`
	Duration      int       `json:"duration" gorm:"not null"` // in weeks
	InstructorID  string    `json:"instructor_id" gorm:"not null;index;type:uuid"`
	TotalStudents int       `json:"total_students" gorm:"not null;default:0"`
	IsActive      bool      `json:"is_active" gorm:"default:true;index"`
	// Relationships
	Instructor  User         `json:"instructor,omitempty" gorm:"foreignKey:InstructorID;references:ID;constraint:OnDelete:RESTRICT"`
	Enrollments []Enrollment `json:"-" gorm:"foreignKey:CourseID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Course model
func (Course) TableName() string {
	return "courses"
}

// CourseCreateRequest represents the create course payload
type CourseCreateRequest struct {
	Title        string `json:"title" binding:"required,max=100"`
	Description  string `json:"description" binding:"required,max=255"`
	Code         string `json:"code" binding:"required,max=20"`
	Capacity     int    `json:"capacity" binding:"required,min=10"`
	Duration     int    `json:"duration" binding:"required,min=1"`
	InstructorID string `json:"instructor_id" binding:"required,uuid"`
}

// CourseUpdateRequest represents the update course payload
type CourseUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Duration    *int    `json:"duration,omitempty"`
}

// CourseResponse is a course with its instructor name flattened
type CourseResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Code          string    `json:"code"`
	Capacity      int       `json:"capacity"`
	Duration      int       `json:"duration"`
	TotalStudents int       `json:"total_students"`
	IsActive      bool      `json:"is_active"`
	Instructor    string    `json:"instructor"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewCourseResponse flattens a course and its preloaded instructor
func NewCourseResponse(course *Course) CourseResponse {
	return CourseResponse{
		ID:            course.ID,
		Title:         course.Title,
		Description:   course.Description,
		Code:          course.Code,
		Capacity:      course.Capacity,
		Duration:      course.Duration,
		TotalStudents: course.TotalStudents,
		IsActive:      course.IsActive,
		Instructor:    course.Instructor.Name,
		CreatedAt:     course.CreatedAt,
	}
}
