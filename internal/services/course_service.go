package services

import (
	"errors"
	"fmt"

	"github.com/edulinkhq/enroll-backend/internal/apperrors"
	"github.com/edulinkhq/enroll-backend/internal/models"
	"github.com/edulinkhq/enroll-backend/internal/utils"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const minCourseCapacity = 10

// CourseStore is the course persistence consumed by CourseService
type CourseStore interface {
	Create(course *models.Course) error
	GetByID(id string) (*models.Course, error)
	CodeExists(code string) (bool, error)
	Update(course *models.Course) error
	Delete(id string) error
	Search(q, sort, order string, isActive bool, page, pageSize int) ([]models.Course, int64, error)
	GetByInstructor(instructorID string, page, pageSize int) ([]models.Course, int64, error)
}

// UserReader resolves accounts for role checks
type UserReader interface {
	GetByID(id string) (*models.User, error)
}

type CourseService struct {
	courses CourseStore
	users   UserReader
}

func NewCourseService(courses CourseStore, users UserReader) *CourseService {
	return &CourseService{courses: courses, users: users}
}

// GetCourses lists courses with search, sort and pagination
func (s *CourseService) GetCourses(q, sort, order string, isActive bool, page, pageSize int) ([]models.CourseResponse, int64, error) {
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)

	courses, total, err := s.courses.Search(q, sort, order, isActive, page, pageSize)
	if err != nil {
		return nil, 0, serverErr(err, "failed to search courses")
	}

	responses := make([]models.CourseResponse, len(courses))
	for i := range courses {
		responses[i] = models.NewCourseResponse(&courses[i])
	}
	return responses, total, nil
}

// GetCourseByID returns a single course
func (s *CourseService) GetCourseByID(id string) (*models.Course, error) {
	course, err := s.courses.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, serverErr(err, "failed to load course")
	}
	return course, nil
}

// CreateCourse creates a course after checking code uniqueness, minimum
// capacity and that the assigned instructor actually holds the role
func (s *CourseService) CreateCourse(req *models.CourseCreateRequest) (*models.Course, error) {
	if req.Capacity < minCourseCapacity {
		return nil, fmt.Errorf("%w: capacity must be at least %d", apperrors.ErrValidation, minCourseCapacity)
	}

	exists, err := s.courses.CodeExists(req.Code)
	if err != nil {
		return nil, serverErr(err, "failed to check course code")
	}
	if exists {
		return nil, apperrors.ErrCourseExists
	}

	instructor, err := s.users.GetByID(req.InstructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, serverErr(err, "failed to load instructor")
	}
	if instructor.Role.Name != models.RoleInstructor && instructor.Role.Name != models.RoleAdmin {
		return nil, apperrors.ErrAuthorization
	}

	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		Code:         req.Code,
		Capacity:     req.Capacity,
		Duration:     req.Duration,
		InstructorID: req.InstructorID,
		IsActive:     true,
	}
	if err := s.courses.Create(course); err != nil {
		return nil, serverErr(err, "failed to create course")
	}
	course.Instructor = *instructor

	logrus.Infof("Course %s (%s) created", course.ID, course.Code)
	return course, nil
}

// UpdateCourse applies a partial update
func (s *CourseService) UpdateCourse(id string, req *models.CourseUpdateRequest) (*models.Course, error) {
	course, err := s.GetCourseByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Capacity != nil {
		if *req.Capacity < minCourseCapacity || *req.Capacity < course.TotalStudents {
			return nil, fmt.Errorf("%w: capacity below minimum or current enrollment", apperrors.ErrValidation)
		}
		course.Capacity = *req.Capacity
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}

	if err := s.courses.Update(course); err != nil {
		return nil, serverErr(err, "failed to update course")
	}
	return course, nil
}

// SetCourseActive deactivates or reactivates a course
func (s *CourseService) SetCourseActive(id string, isActive bool) (*models.Course, error) {
	course, err := s.GetCourseByID(id)
	if err != nil {
		return nil, err
	}

	course.IsActive = isActive
	if err := s.courses.Update(course); err != nil {
		return nil, serverErr(err, "failed to update course")
	}
	return course, nil
}

// DeleteCourse permanently removes a course
func (s *CourseService) DeleteCourse(id string) error {
	if _, err := s.GetCourseByID(id); err != nil {
		return err
	}
	if err := s.courses.Delete(id); err != nil {
		return serverErr(err, "failed to delete course")
	}
	logrus.Infof("Course %s deleted", id)
	return nil
}

// GetInstructorCourses lists the courses taught by an instructor
func (s *CourseService) GetInstructorCourses(instructorID string, page, pageSize int) ([]models.CourseResponse, int64, error) {
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)

	courses, total, err := s.courses.GetByInstructor(instructorID, page, pageSize)
	if err != nil {
		return nil, 0, serverErr(err, "failed to load instructor courses")
	}

	responses := make([]models.CourseResponse, len(courses))
	for i := range courses {
		responses[i] = models.NewCourseResponse(&courses[i])
	}
	return responses, total, nil
}

func serverErr(cause error, msg string) error {
	sentry.CaptureException(cause)
	logrus.WithError(cause).Error(msg)
	return fmt.Errorf("%w: %w", apperrors.ErrServer, cause)
}
