package services

import (
	"context"
	"errors"
	"testing"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
)

func TestCourseServiceCreateEnrollsRoster(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.st.students["VH1"] = &models.Student{RollNo: "VH1", Semester: 4, Section: "A"}
	store.st.students["VH2"] = &models.Student{RollNo: "VH2", Semester: 4, Section: "A"}
	store.st.students["VH3"] = &models.Student{RollNo: "VH3", Semester: 4, Section: "B"}
	store.st.students["VH4"] = &models.Student{RollNo: "VH4", Semester: 6, Section: "A"}

	svc := NewCourseService(store)
	course, err := svc.Create(context.Background(), dto.CreateCourseRequest{
		Code: " cs3401 ", Title: "Algorithms", Semester: 4, Credits: 4, Section: "a",
	})
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if course.Code != "CS3401" {
		t.Errorf("Code = %q, want normalized CS3401", course.Code)
	}
	if got := len(store.st.academic); got != 2 {
		t.Fatalf("enrolled %d students, want 2 (semester 4 section A)", got)
	}
	for _, ad := range store.st.academic {
		if ad.CourseCode != "CS3401" || ad.Subject != "Algorithms" {
			t.Errorf("enrollment row %+v missing denormalized course fields", ad)
		}
	}
}

func TestCourseServiceCreateDuplicateSection(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := NewCourseService(store)

	req := dto.CreateCourseRequest{Code: "CS3401", Title: "Algorithms", Semester: 4, Section: "A"}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("first Create() unexpected error: %v", err)
	}
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, apperrors.ErrCourseExists) {
		t.Errorf("second Create() error = %v, want ErrCourseExists", err)
	}
}

func TestCourseServiceEnrollIdempotent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.st.students["VH1"] = &models.Student{RollNo: "VH1", Semester: 4, Section: "A"}
	store.st.courses[1] = &models.Course{ID: 1, Code: "CS3401", Title: "Algorithms", Semester: 4, Section: "A"}
	store.st.nextCourseID = 1

	svc := NewCourseService(store)
	req := dto.EnrollRequest{RollNo: "vh1", CourseCode: "cs3401", Section: "a"}

	msg, err := svc.Enroll(context.Background(), req)
	if err != nil {
		t.Fatalf("Enroll() unexpected error: %v", err)
	}
	if msg != "Student enrolled successfully" {
		t.Errorf("first enroll message = %q", msg)
	}

	msg, err = svc.Enroll(context.Background(), req)
	if err != nil {
		t.Fatalf("re-Enroll() unexpected error: %v", err)
	}
	if msg != "Student already enrolled in this course" {
		t.Errorf("second enroll message = %q, want already-enrolled notice", msg)
	}
	if len(store.st.academic) != 1 {
		t.Errorf("academic rows = %d, want 1", len(store.st.academic))
	}
}

func TestCourseServiceDeleteCascades(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.st.courses[7] = &models.Course{ID: 7, Code: "CS3401", Section: "A"}
	store.st.nextCourseID = 7
	store.st.academic = append(store.st.academic,
		&models.AcademicData{ID: 1, StudentRollNo: "VH1", CourseID: 7, CourseCode: "CS3401"},
		&models.AcademicData{ID: 2, StudentRollNo: "VH2", CourseID: 7, CourseCode: "CS3401"},
		&models.AcademicData{ID: 3, StudentRollNo: "VH1", CourseID: 8, CourseCode: "CS3451"})

	svc := NewCourseService(store)
	if err := svc.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	if _, ok := store.st.courses[7]; ok {
		t.Error("course not removed")
	}
	if len(store.st.academic) != 1 || store.st.academic[0].CourseID != 8 {
		t.Errorf("expected only the unrelated enrollment to survive, got %d rows", len(store.st.academic))
	}

	if err := svc.Delete(context.Background(), 99); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("Delete(unknown) error = %v, want ErrCourseNotFound", err)
	}
}

func TestCourseServiceAssignFacultyRequiresExisting(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.st.courses[1] = &models.Course{ID: 1, Code: "CS3401", Section: "A"}
	store.st.nextCourseID = 1

	svc := NewCourseService(store)
	if err := svc.AssignFaculty(context.Background(), 1, "STF404"); !errors.Is(err, apperrors.ErrFacultyNotFound) {
		t.Errorf("AssignFaculty(unknown faculty) error = %v, want ErrFacultyNotFound", err)
	}

	store.st.faculties["STF1"] = &models.Faculty{StaffNo: "STF1", Name: "Dr. Kumar"}
	if err := svc.AssignFaculty(context.Background(), 1, "STF1"); err != nil {
		t.Fatalf("AssignFaculty() unexpected error: %v", err)
	}
	if c := store.st.courses[1]; c.FacultyID == nil || *c.FacultyID != "STF1" {
		t.Error("faculty not recorded on course")
	}
}
