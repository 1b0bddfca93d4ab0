package services

import (
	"errors"

	"github.com/edulinkhq/enroll-backend/internal/apperrors"
	"github.com/edulinkhq/enroll-backend/internal/models"
	"github.com/edulinkhq/enroll-backend/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EnrollmentStore is the enrollment persistence consumed by EnrollmentService
type EnrollmentStore interface {
	Create(enrollment *models.Enrollment) error
	Get(userID, courseID string) (*models.Enrollment, error)
	Delete(userID, courseID string) error
	GetUserCourses(userID string, page, pageSize int) ([]models.Course, int64, error)
	GetCourseStudents(courseID string, page, pageSize int) ([]models.User, int64, error)
	GetAll(page, pageSize int) ([]models.Enrollment, int64, error)
}

// EventSink publishes lifecycle events; nil disables publishing
type EventSink interface {
	Publish(event string, payload map[string]interface{}) error
}

type EnrollmentService struct {
	enrollments EnrollmentStore
	courses     CourseStore
	events      EventSink
}

func NewEnrollmentService(enrollments EnrollmentStore, courses CourseStore, events EventSink) *EnrollmentService {
	return &EnrollmentService{enrollments: enrollments, courses: courses, events: events}
}

// Enroll enrolls a user into an active course with free capacity
func (s *EnrollmentService) Enroll(userID, courseID string) (*models.EnrollmentResponse, error) {
	course, err := s.courses.GetByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, serverErr(err, "failed to load course")
	}

	if !course.IsActive || course.TotalStudents >= course.Capacity {
		return nil, apperrors.ErrCourseFull
	}

	if _, err := s.enrollments.Get(userID, courseID); err == nil {
		return nil, apperrors.ErrEnrollmentExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, serverErr(err, "failed to check enrollment")
	}

	enrollment := &models.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.enrollments.Create(enrollment); err != nil {
		return nil, serverErr(err, "failed to create enrollment")
	}

	s.publish("enrollment.created", map[string]interface{}{
		"user_id":   userID,
		"course_id": courseID,
	})
	logrus.Infof("User %s enrolled in course %s", userID, courseID)

	return &models.EnrollmentResponse{
		CourseTitle:    course.Title,
		CourseCode:     course.Code,
		CourseDuration: course.Duration,
		CreatedAt:      enrollment.CreatedAt,
	}, nil
}

// Unenroll removes a user's enrollment
func (s *EnrollmentService) Unenroll(userID, courseID string) error {
	if err := s.enrollments.Delete(userID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrEnrollmentNotFound
		}
		return serverErr(err, "failed to delete enrollment")
	}

	s.publish("enrollment.deleted", map[string]interface{}{
		"user_id":   userID,
		"course_id": courseID,
	})
	logrus.Infof("User %s unenrolled from course %s", userID, courseID)
	return nil
}

// GetUserCourses lists the courses a user is enrolled in
func (s *EnrollmentService) GetUserCourses(userID string, page, pageSize int) ([]models.CourseResponse, int64, error) {
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)

	courses, total, err := s.enrollments.GetUserCourses(userID, page, pageSize)
	if err != nil {
		return nil, 0, serverErr(err, "failed to load user courses")
	}

	responses := make([]models.CourseResponse, len(courses))
	for i := range courses {
		responses[i] = models.NewCourseResponse(&courses[i])
	}
	return responses, total, nil
}

// GetCourseStudents lists the students enrolled in a course
func (s *EnrollmentService) GetCourseStudents(courseID string, page, pageSize int) ([]models.UserResponse, int64, error) {
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)

	if _, err := s.courses.GetByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.ErrCourseNotFound
		}
		return nil, 0, serverErr(err, "failed to load course")
	}

	students, total, err := s.enrollments.GetCourseStudents(courseID, page, pageSize)
	if err != nil {
		return nil, 0, serverErr(err, "failed to load course students")
	}

	responses := make([]models.UserResponse, len(students))
	for i := range students {
		responses[i] = models.NewUserResponse(&students[i])
	}
	return responses, total, nil
}

// GetAllEnrollments lists every enrollment (admin view)
func (s *EnrollmentService) GetAllEnrollments(page, pageSize int) ([]models.Enrollment, int64, error) {
	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)

	enrollments, total, err := s.enrollments.GetAll(page, pageSize)
	if err != nil {
		return nil, 0, serverErr(err, "failed to load enrollments")
	}
	return enrollments, total, nil
}

func (s *EnrollmentService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event, payload); err != nil {
		logrus.WithError(err).Warnf("Failed to publish %s event", event)
	}
}
