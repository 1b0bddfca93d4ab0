package excel

import (
	"fmt"
	"time"

	"github.com/edulinkhq/enroll-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// CourseReader resolves the course being exported
type CourseReader interface {
	GetByID(id string) (*models.Course, error)
}

// StudentLister pages through a course's enrolled students
type StudentLister interface {
	GetCourseStudents(courseID string, page, pageSize int) ([]models.User, int64, error)
}

// RosterService builds xlsx roster workbooks for admins
type RosterService struct {
	courses  CourseReader
	students StudentLister
}

func NewRosterService(courses CourseReader, students StudentLister) *RosterService {
	return &RosterService{courses: courses, students: students}
}

const rosterPageSize = 200

// ExportCourseRoster builds a workbook listing every student enrolled in the
// course. The caller streams the file and owns the response headers.
func (s *RosterService) ExportCourseRoster(courseID string) (*excelize.File, string, error) {
	course, err := s.courses.GetByID(courseID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load course: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Roster"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"#", "Name", "Email", "Nationality", "Active"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetRowStyle(sheet, 1, 1, style)
	}

	row := 2
	for page := 1; ; page++ {
		students, total, err := s.students.GetCourseStudents(courseID, page, rosterPageSize)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load students: %w", err)
		}
		for _, student := range students {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), row-1)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), student.Name)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), student.Email)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), student.Nationality)
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), student.IsActive)
			row++
		}
		if int64((page)*rosterPageSize) >= total || len(students) == 0 {
			break
		}
	}

	filename := fmt.Sprintf("roster_%s_%d.xlsx", course.Code, time.Now().Unix())
	return f, filename, nil
}
