package repository

import (
	"github.com/edulinkhq/enroll-backend/internal/models"
	"github.com/edulinkhq/enroll-backend/internal/utils"

	"gorm.io/gorm"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create creates a new course
func (r *CourseRepository) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

// GetByID retrieves a course by ID with its instructor preloaded
func (r *CourseRepository) GetByID(id string) (*models.Course, error) {
	var course models.Course
	err := r.db.Preload("Instructor").First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// CodeExists checks if a course code is already taken
func (r *CourseRepository) CodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Course{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// Update updates a course
func (r *CourseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

// Delete removes a course and, via cascade, its enrollments
func (r *CourseRepository) Delete(id string) error {
	return r.db.Delete(&models.Course{}, "id = ?", id).Error
}

var courseSortColumns = map[string]string{
	"title":      "title",
	"code":       "code",
	"capacity":   "capacity",
	"duration":   "duration",
	"created_at": "created_at",
}

// Search returns courses matching the filters with search, sort and pagination
func (r *CourseRepository) Search(q, sort, order string, isActive bool, page, pageSize int) ([]models.Course, int64, error) {
	var courses []models.Course
	var total int64

	query := r.db.Model(&models.Course{}).Where("is_active = ?", isActive)
	if q != "" {
		query = query.Where("title ILIKE ?", "%"+q+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := courseSortColumns[sort]
	if !ok {
		column = "created_at"
	}
	if order != "asc" {
		order = "desc"
	}

	err := query.Preload("Instructor").
		Order(column + " " + order).
		Offset(utils.CalculateOffset(page, pageSize)).Limit(pageSize).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// GetByInstructor returns the courses taught by an instructor
func (r *CourseRepository) GetByInstructor(instructorID string, page, pageSize int) ([]models.Course, int64, error) {
	var courses []models.Course
	var total int64

	query := r.db.Model(&models.Course{}).Where("instructor_id = ?", instructorID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Preload("Instructor").
		Offset(utils.CalculateOffset(page, pageSize)).Limit(pageSize).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}
