package services

import (
	"github.com/edulinkhq/enroll-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeCourseStore struct {
	courses map[string]*models.Course
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[string]*models.Course)}
}

func (f *fakeCourseStore) Create(course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	cp := *course
	f.courses[course.ID] = &cp
	return nil
}

func (f *fakeCourseStore) GetByID(id string) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *course
	return &cp, nil
}

func (f *fakeCourseStore) CodeExists(code string) (bool, error) {
	for _, course := range f.courses {
		if course.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseStore) Update(course *models.Course) error {
	if _, ok := f.courses[course.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *course
	f.courses[course.ID] = &cp
	return nil
}

func (f *fakeCourseStore) Delete(id string) error {
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseStore) Search(q, sort, order string, isActive bool, page, pageSize int) ([]models.Course, int64, error) {
	var matched []models.Course
	for _, course := range f.courses {
		if course.IsActive == isActive {
			matched = append(matched, *course)
		}
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeCourseStore) GetByInstructor(instructorID string, page, pageSize int) ([]models.Course, int64, error) {
	var matched []models.Course
	for _, course := range f.courses {
		if course.InstructorID == instructorID {
			matched = append(matched, *course)
		}
	}
	return matched, int64(len(matched)), nil
}

type fakeUserReader struct {
	users map[string]*models.User
}

func newFakeUserReader() *fakeUserReader {
	return &fakeUserReader{users: make(map[string]*models.User)}
}

func (f *fakeUserReader) add(roleName string) *models.User {
	user := &models.User{
		ID:       uuid.NewString(),
		Name:     "Test " + roleName,
		Email:    uuid.NewString() + "@example.com",
		Role:     models.Role{ID: uuid.NewString(), Name: roleName},
		IsActive: true,
	}
	user.RoleID = user.Role.ID
	f.users[user.ID] = user
	return user
}

func (f *fakeUserReader) GetByID(id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

type enrollmentKey struct {
	userID   string
	courseID string
}

type fakeEnrollmentStore struct {
	courses     *fakeCourseStore
	enrollments map[enrollmentKey]*models.Enrollment
}

func newFakeEnrollmentStore(courses *fakeCourseStore) *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		courses:     courses,
		enrollments: make(map[enrollmentKey]*models.Enrollment),
	}
}

func (f *fakeEnrollmentStore) Create(enrollment *models.Enrollment) error {
	cp := *enrollment
	f.enrollments[enrollmentKey{enrollment.UserID, enrollment.CourseID}] = &cp
	if course, ok := f.courses.courses[enrollment.CourseID]; ok {
		course.TotalStudents++
	}
	return nil
}

func (f *fakeEnrollmentStore) Get(userID, courseID string) (*models.Enrollment, error) {
	enrollment, ok := f.enrollments[enrollmentKey{userID, courseID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *enrollment
	return &cp, nil
}

func (f *fakeEnrollmentStore) Delete(userID, courseID string) error {
	key := enrollmentKey{userID, courseID}
	if _, ok := f.enrollments[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.enrollments, key)
	if course, ok := f.courses.courses[courseID]; ok {
		course.TotalStudents--
	}
	return nil
}

func (f *fakeEnrollmentStore) GetUserCourses(userID string, page, pageSize int) ([]models.Course, int64, error) {
	var courses []models.Course
	for key := range f.enrollments {
		if key.userID == userID {
			if course, ok := f.courses.courses[key.courseID]; ok {
				courses = append(courses, *course)
			}
		}
	}
	return courses, int64(len(courses)), nil
}

func (f *fakeEnrollmentStore) GetCourseStudents(courseID string, page, pageSize int) ([]models.User, int64, error) {
	var students []models.User
	for key := range f.enrollments {
		if key.courseID == courseID {
			students = append(students, models.User{ID: key.userID})
		}
	}
	return students, int64(len(students)), nil
}

func (f *fakeEnrollmentStore) GetAll(page, pageSize int) ([]models.Enrollment, int64, error) {
	var all []models.Enrollment
	for _, enrollment := range f.enrollments {
		all = append(all, *enrollment)
	}
	return all, int64(len(all)), nil
}

type fakeEventSink struct {
	published []string
}

func (f *fakeEventSink) Publish(event string, payload map[string]interface{}) error {
	f.published = append(f.published, event)
	return nil
}
