package repository

import (
	"github.com/edulinkhq/enroll-backend/internal/models"
	"github.com/edulinkhq/enroll-backend/internal/utils"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create creates an enrollment and bumps the course counter in one transaction
func (r *EnrollmentRepository) Create(enrollment *models.Enrollment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(enrollment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Course{}).Where("id = ?", enrollment.CourseID).
			UpdateColumn("total_students", gorm.Expr("total_students + 1")).Error
	})
}

// Get retrieves a single enrollment
func (r *EnrollmentRepository) Get(userID, courseID string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Delete removes an enrollment and decrements the course counter in one transaction
func (r *EnrollmentRepository) Delete(userID, courseID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND course_id = ?", userID, courseID).Delete(&models.Enrollment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Course{}).Where("id = ? AND total_students > 0", courseID).
			UpdateColumn("total_students", gorm.Expr("total_students - 1")).Error
	})
}

// GetUserCourses returns the courses a user is enrolled in
func (r *EnrollmentRepository) GetUserCourses(userID string, page, pageSize int) ([]models.Course, int64, error) {
	var courses []models.Course
	var total int64

	query := r.db.Model(&models.Course{}).
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ?", userID)
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

// GetCourseStudents returns the users enrolled in a course
func (r *EnrollmentRepository) GetCourseStudents(courseID string, page, pageSize int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := r.db.Model(&models.User{}).
		Joins("JOIN enrollments ON enrollments.user_id = users.id").
		Where("enrollments.course_id = ?", courseID)
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

// GetAll returns all enrollments with pagination
func (r *EnrollmentRepository) GetAll(page, pageSize int) ([]models.Enrollment, int64, error) {
	var enrollments []models.Enrollment
	var total int64

	if err := r.db.Model(&models.Enrollment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Offset(utils.CalculateOffset(page, pageSize)).Limit(pageSize).
		Find(&enrollments).Error
	if err != nil {
		return nil, 0, err
	}
	return enrollments, total, nil
}
