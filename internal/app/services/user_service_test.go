package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/filestorage"
)

func newTestStorage(t *testing.T) *filestorage.LocalStorage {
	t.Helper()
	storage, err := filestorage.NewLocalStorage(t.TempDir(), "http://localhost:8000/uploads")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	return storage
}

func TestUserServiceCreateStudentEnrollsCohortCourses(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.st.courses[1] = &models.Course{ID: 1, Code: "CS3401", Title: "Algorithms", Semester: 4, Section: "A"}
	store.st.courses[2] = &models.Course{ID: 2, Code: "CS3451", Title: "Operating Systems", Semester: 4, Section: "A"}
	store.st.courses[3] = &models.Course{ID: 3, Code: "CS3501", Title: "Networks", Semester: 5, Section: "A"}
	store.st.nextCourseID = 3

	svc := NewUserService(store, newTestStorage(t))
	err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		UserID: "vh22ad001", Password: "pw", Role: "Student",
		Name: "Arun", Year: 2, Semester: 4, Section: "a",
	})
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}

	student, ok := store.st.students["VH22AD001"]
	if !ok {
		t.Fatal("student profile not created under normalized roll number")
	}
	if student.Section != "A" {
		t.Errorf("Section = %q, want normalized A", student.Section)
	}

	if got := len(store.st.academic); got != 2 {
		t.Fatalf("enrolled into %d courses, want 2 (semester 4 section A only)", got)
	}
	for _, ad := range store.st.academic {
		if ad.Status != models.StatusPursuing {
			t.Errorf("enrollment status = %q, want %q", ad.Status, models.StatusPursuing)
		}
	}
}

func TestUserServiceCreateUserDuplicate(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.st.users["VH1"] = &models.User{ID: "VH1", Role: models.RoleStudent, Password: "x"}
	svc := NewUserService(store, newTestStorage(t))

	err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		UserID: "VH1", Password: "pw", Role: "Student",
	})
	if !errors.Is(err, apperrors.ErrUserIDExists) {
		t.Errorf("CreateUser(duplicate) error = %v, want ErrUserIDExists", err)
	}

	err = svc.CreateUser(context.Background(), dto.CreateUserRequest{
		UserID: "VH2", Password: "pw", Role: "Wizard",
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("CreateUser(bad role) error = %v, want ErrBadRequest", err)
	}
}

func TestUserServiceBulkUploadCollectsErrors(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.st.users["VH102"] = &models.User{ID: "VH102", Role: models.RoleStudent, Password: "x"}
	svc := NewUserService(store, newTestStorage(t))

	csv := strings.Join([]string{
		"Roll No,Name,Year,Sem,Section,Password",
		"VH101,Arun,2,4,A,pw1",
		"VH102,Babu,2,4,A,pw2", // already exists
		",Missing,2,4,A,pw3",   // blank id: silently skipped
		"nan,Pandas,2,4,A,pw4", // sheet artifact: silently skipped
		"VH103,Charu,2,4,B,",   // empty password defaults to the id
	}, "\n")

	result, err := svc.BulkUpload(context.Background(), "Student", "roster.csv", []byte(csv))
	if err != nil {
		t.Fatalf("BulkUpload() unexpected error: %v", err)
	}

	if result.SuccessCount != 2 {
		t.Errorf("SuccessCount = %d, want 2", result.SuccessCount)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %v, want exactly one entry", result.Errors)
	}
	if !strings.Contains(result.Errors[0], "VH102") {
		t.Errorf("error entry %q should name the duplicate row", result.Errors[0])
	}

	if u, ok := store.st.users["VH103"]; !ok {
		t.Error("VH103 not created")
	} else if u.Password != "VH103" {
		t.Errorf("VH103 password = %q, want id fallback", u.Password)
	}
	if _, ok := store.st.students["VH101"]; !ok {
		t.Error("VH101 profile not created")
	}
}

func TestUserServiceBulkUploadMissingIdentifierColumn(t *testing.T) {
	t.Parallel()

	svc := NewUserService(newFakeStore(), newTestStorage(t))
	_, err := svc.BulkUpload(context.Background(), "Student", "roster.csv",
		[]byte("Name,Year\nArun,2\n"))
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("BulkUpload(no id column) error = %v, want ErrBadRequest", err)
	}
}

func TestUserServiceDeleteStudentCascades(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.st.users["VH1"] = &models.User{ID: "VH1", Role: models.RoleStudent, Password: "x"}
	store.st.students["VH1"] = &models.Student{RollNo: "VH1", Name: "Arun", Year: 2, Semester: 4, Section: "A"}
	store.st.academic = append(store.st.academic,
		&models.AcademicData{ID: 1, StudentRollNo: "VH1", CourseID: 1, CourseCode: "CS3401"})

	svc := NewUserService(store, newTestStorage(t))
	if err := svc.DeleteStudent(context.Background(), "vh1"); err != nil {
		t.Fatalf("DeleteStudent() unexpected error: %v", err)
	}

	if len(store.st.academic) != 0 {
		t.Error("enrollment rows not removed")
	}
	if _, ok := store.st.students["VH1"]; ok {
		t.Error("student profile not removed")
	}
	if _, ok := store.st.users["VH1"]; ok {
		t.Error("account not removed")
	}
}

func TestUserServiceDeleteFacultyDetachesCourses(t *testing.T) {
	t.Parallel()

	staffNo := "STF1"
	store := newFakeStore()
	store.st.users[staffNo] = &models.User{ID: staffNo, Role: models.RoleFaculty, Password: "x"}
	store.st.faculties[staffNo] = &models.Faculty{StaffNo: staffNo, Name: "Dr. Kumar", Designation: "Professor"}
	store.st.courses[1] = &models.Course{ID: 1, Code: "CS3401", Section: "A", FacultyID: &staffNo}
	store.st.nextCourseID = 1

	svc := NewUserService(store, newTestStorage(t))
	if err := svc.DeleteFaculty(context.Background(), staffNo); err != nil {
		t.Fatalf("DeleteFaculty() unexpected error: %v", err)
	}

	if store.st.courses[1].FacultyID != nil {
		t.Error("course still references deleted faculty")
	}
	if _, ok := store.st.faculties[staffNo]; ok {
		t.Error("faculty profile not removed")
	}
}

func TestUserServiceToppers(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.st.students["A"] = &models.Student{RollNo: "A", Year: 2, Section: "A", CGPA: 9.1}
	store.st.students["B"] = &models.Student{RollNo: "B", Year: 2, Section: "A", CGPA: 8.2}
	store.st.students["C"] = &models.Student{RollNo: "C", Year: 3, Section: "B", CGPA: 9.8}
	store.st.students["D"] = &models.Student{RollNo: "D", Year: 2, Section: "A", CGPA: 7.0}
	store.st.students["E"] = &models.Student{RollNo: "E", Year: 2, Section: "A", CGPA: 8.9}

	svc := NewUserService(store, newTestStorage(t))

	overall, err := svc.ToppersOverall(context.Background(), nil)
	if err != nil {
		t.Fatalf("ToppersOverall() unexpected error: %v", err)
	}
	if len(overall) != 3 || overall[0].RollNo != "C" {
		t.Errorf("overall toppers = %v, want top 3 led by C", rollNos(overall))
	}

	year := 2
	classwise, err := svc.ToppersClasswise(context.Background(), year, "A")
	if err != nil {
		t.Fatalf("ToppersClasswise() unexpected error: %v", err)
	}
	if len(classwise) != 4 || classwise[0].RollNo != "A" || classwise[3].RollNo != "D" {
		t.Errorf("classwise order = %v, want CGPA descending", rollNos(classwise))
	}
}

func rollNos(students []*models.Student) []string {
	out := make([]string, len(students))
	for i, s := range students {
		out[i] = s.RollNo
	}
	return out
}
