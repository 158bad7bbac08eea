package services

import (
	"context"
	"errors"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/helpers"
	"github.com/vhce/collegehub/internal/pkg/logger"
)

// CourseService manages course offerings and enrollment fan-out.
type CourseService struct {
	store Store
}

// NewCourseService creates a new CourseService.
func NewCourseService(store Store) *CourseService {
	return &CourseService{store: store}
}

// enrollCohortInCourse enrolls every student of the course's semester and
// section into it. Returns the number of students enrolled.
func enrollCohortInCourse(ctx context.Context, s Store, course *models.Course) (int, error) {
	students, err := s.Students().ListBySemesterSection(ctx, course.Semester, course.Section)
	if err != nil {
		return 0, err
	}
	for _, student := range students {
		err := s.Academic().CreateEnrollment(ctx, &models.AcademicData{
			StudentRollNo: student.RollNo,
			CourseID:      course.ID,
			CourseCode:    course.Code,
			Subject:       course.Title,
			Section:       course.Section,
		})
		if err != nil {
			return 0, err
		}
	}
	return len(students), nil
}

// enrollStudentInCohortCourses enrolls a student into every offering of
// their semester and section. Returns the number of courses enrolled.
func enrollStudentInCohortCourses(ctx context.Context, s Store, student *models.Student) (int, error) {
	courses, err := s.Courses().ListBySemesterSection(ctx, student.Semester, student.Section)
	if err != nil {
		return 0, err
	}
	for _, course := range courses {
		err := s.Academic().CreateEnrollment(ctx, &models.AcademicData{
			StudentRollNo: student.RollNo,
			CourseID:      course.ID,
			CourseCode:    course.Code,
			Subject:       course.Title,
			Section:       course.Section,
		})
		if err != nil {
			return 0, err
		}
	}
	return len(courses), nil
}

// Create adds a course offering and enrolls the current section roster.
func (s *CourseService) Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Code:     helpers.NormalizeCode(req.Code),
		Title:    req.Title,
		Semester: req.Semester,
		Credits:  req.Credits,
		Category: req.Category,
		Section:  helpers.NormalizeCode(req.Section),
	}
	if course.Section == "" {
		course.Section = "A"
	}

	err := s.store.InTx(ctx, func(ctx context.Context, tx Store) error {
		id, err := tx.Courses().Create(ctx, course)
		if err != nil {
			return err
		}
		course.ID = id

		enrolled, err := enrollCohortInCourse(ctx, tx, course)
		if err != nil {
			return err
		}
		logger.Info().Str("code", course.Code).Str("section", course.Section).
			Int("enrolled", enrolled).Msg("Course created")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return course, nil
}

// List retrieves courses with optional filters.
func (s *CourseService) List(ctx context.Context, semester *int, section, facultyID string) ([]*models.Course, error) {
	return s.store.Courses().List(ctx, semester, helpers.NormalizeCode(section), facultyID)
}

// ListByFaculty retrieves the courses a faculty member teaches.
func (s *CourseService) ListByFaculty(ctx context.Context, facultyID string) ([]*models.Course, error) {
	return s.store.Courses().List(ctx, nil, "", facultyID)
}

// AssignFaculty attaches an existing faculty member to a course.
func (s *CourseService) AssignFaculty(ctx context.Context, courseID int64, facultyID string) error {
	if _, err := s.store.Faculties().GetByStaffNo(ctx, facultyID); err != nil {
		return err
	}
	return s.store.Courses().AssignFaculty(ctx, courseID, &facultyID)
}

// Enroll adds a single student to a course offering. Re-enrolling is not an
// error; the caller gets an "already enrolled" message instead.
func (s *CourseService) Enroll(ctx context.Context, req dto.EnrollRequest) (string, error) {
	rollNo := helpers.NormalizeCode(req.RollNo)
	code := helpers.NormalizeCode(req.CourseCode)
	section := helpers.NormalizeCode(req.Section)

	if _, err := s.store.Students().GetByRollNo(ctx, rollNo); err != nil {
		return "", err
	}
	course, err := s.store.Courses().GetByCodeSection(ctx, code, section)
	if err != nil {
		return "", err
	}

	if _, err := s.store.Academic().GetStatus(ctx, rollNo, code); err == nil {
		return "Student already enrolled in this course", nil
	} else if !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		return "", err
	}

	err = s.store.Academic().CreateEnrollment(ctx, &models.AcademicData{
		StudentRollNo: rollNo,
		CourseID:      course.ID,
		CourseCode:    course.Code,
		Subject:       course.Title,
		Section:       course.Section,
	})
	if err != nil {
		return "", err
	}
	return "Student enrolled successfully", nil
}

// Delete removes a course and all its enrollment rows.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	return s.store.InTx(ctx, func(ctx context.Context, tx Store) error {
		if _, err := tx.Courses().GetByID(ctx, id); err != nil {
			return err
		}
		if err := tx.Academic().DeleteByCourse(ctx, id); err != nil {
			return err
		}
		return tx.Courses().Delete(ctx, id)
	})
}
