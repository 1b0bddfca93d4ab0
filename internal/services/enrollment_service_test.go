package services

import (
	"testing"

	"github.com/edulinkhq/enroll-backend/internal/apperrors"
	"github.com/edulinkhq/enroll-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnrollmentTestService(capacity int) (*EnrollmentService, *models.Course, *fakeCourseStore, *fakeEventSink) {
	courses := newFakeCourseStore()
	course := &models.Course{
		Title:    "Operating Systems",
		Code:     "CS-301",
		Capacity: capacity,
		Duration: 10,
		IsActive: true,
	}
	_ = courses.Create(course)

	events := &fakeEventSink{}
	service := NewEnrollmentService(newFakeEnrollmentStore(courses), courses, events)
	return service, course, courses, events
}

func TestEnroll(t *testing.T) {
	service, course, courses, events := newEnrollmentTestService(10)
	userID := uuid.NewString()

	resp, err := service.Enroll(userID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, course.Title, resp.CourseTitle)
	assert.Equal(t, course.Code, resp.CourseCode)
	assert.Contains(t, events.published, "enrollment.created")

	stored, err := courses.GetByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.TotalStudents)
}

func TestEnrollTwiceFails(t *testing.T) {
	service, course, _, _ := newEnrollmentTestService(10)
	userID := uuid.NewString()

	_, err := service.Enroll(userID, course.ID)
	require.NoError(t, err)

	_, err = service.Enroll(userID, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentExists)
}

func TestEnrollFullCourse(t *testing.T) {
	service, course, courses, _ := newEnrollmentTestService(10)
	courses.courses[course.ID].TotalStudents = 10

	_, err := service.Enroll(uuid.NewString(), course.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseFull)
}

func TestEnrollInactiveCourse(t *testing.T) {
	service, course, courses, _ := newEnrollmentTestService(10)
	courses.courses[course.ID].IsActive = false

	_, err := service.Enroll(uuid.NewString(), course.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseFull)
}

func TestEnrollUnknownCourse(t *testing.T) {
	service, _, _, _ := newEnrollmentTestService(10)

	_, err := service.Enroll(uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestUnenroll(t *testing.T) {
	service, course, courses, events := newEnrollmentTestService(10)
	userID := uuid.NewString()

	_, err := service.Enroll(userID, course.ID)
	require.NoError(t, err)

	require.NoError(t, service.Unenroll(userID, course.ID))
	assert.Contains(t, events.published, "enrollment.deleted")

	stored, err := courses.GetByID(course.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.TotalStudents)

	// A freed seat can be taken again
	_, err = service.Enroll(userID, course.ID)
	assert.NoError(t, err)
}

func TestUnenrollWithoutEnrollment(t *testing.T) {
	service, course, _, _ := newEnrollmentTestService(10)

	err := service.Unenroll(uuid.NewString(), course.ID)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestGetUserCourses(t *testing.T) {
	service, course, _, _ := newEnrollmentTestService(10)
	userID := uuid.NewString()

	_, err := service.Enroll(userID, course.ID)
	require.NoError(t, err)

	responses, total, err := service.GetUserCourses(userID, 1, 15)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, responses, 1)
	assert.Equal(t, course.Code, responses[0].Code)
	assert.Equal(t, 1, responses[0].TotalStudents)
}

func TestGetCourseStudents(t *testing.T) {
	service, course, _, _ := newEnrollmentTestService(10)

	_, err := service.Enroll(uuid.NewString(), course.ID)
	require.NoError(t, err)
	_, err = service.Enroll(uuid.NewString(), course.ID)
	require.NoError(t, err)

	_, total, err := service.GetCourseStudents(course.ID, 1, 15)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, _, err = service.GetCourseStudents(uuid.NewString(), 1, 15)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
