package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/filestorage"
	"github.com/vhce/collegehub/internal/pkg/helpers"
	"github.com/vhce/collegehub/internal/pkg/logger"
	"github.com/vhce/collegehub/internal/pkg/tabular"
)

const defaultDesignation = "Assistant Professor"

// UserService provisions accounts with their role profiles, individually or
// from uploaded sheets, and manages profile updates and photos.
type UserService struct {
	store   Store
	storage *filestorage.LocalStorage
}

// NewUserService creates a new UserService.
func NewUserService(store Store, storage *filestorage.LocalStorage) *UserService {
	return &UserService{store: store, storage: storage}
}

// CreateUser provisions one account. Students get a profile plus automatic
// enrollment into every course of their semester and section; faculty and
// HOD get a staff profile; admin gets only the account row.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) error {
	if !models.ValidRole(req.Role) {
		return apperrors.NewBadRequestError(fmt.Sprintf("invalid role %q", req.Role))
	}

	userID := helpers.NormalizeCode(req.UserID)
	if userID == "" {
		return apperrors.NewBadRequestError("user_id must not be empty")
	}

	return s.store.InTx(ctx, func(ctx context.Context, tx Store) error {
		return createUserTx(ctx, tx, userID, req)
	})
}

// createUserTx is the per-user provisioning step shared by CreateUser and
// BulkUpload. It assumes it runs inside a transaction.
func createUserTx(ctx context.Context, tx Store, userID string, req dto.CreateUserRequest) error {
	exists, err := tx.Users().Exists(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrUserIDExists
	}

	if err := tx.Users().Create(ctx, &models.User{
		ID:       userID,
		Role:     models.Role(req.Role),
		Password: req.Password,
	}); err != nil {
		return err
	}

	switch models.Role(req.Role) {
	case models.RoleStudent:
		student := &models.Student{
			RollNo:   userID,
			Name:     req.Name,
			Year:     req.Year,
			Semester: req.Semester,
			Section:  helpers.NormalizeCode(req.Section),
		}
		if student.Year == 0 {
			student.Year = 1
		}
		if student.Semester == 0 {
			student.Semester = 1
		}
		if student.Section == "" {
			student.Section = "A"
		}
		if err := tx.Students().Create(ctx, student); err != nil {
			return err
		}
		if _, err := enrollStudentInCohortCourses(ctx, tx, student); err != nil {
			return err
		}

	case models.RoleFaculty, models.RoleHOD:
		faculty := &models.Faculty{
			StaffNo:     userID,
			Name:        req.Name,
			Designation: req.Designation,
			DOJ:         req.DOJ,
		}
		if faculty.Designation == "" {
			faculty.Designation = defaultDesignation
		}
		if err := tx.Faculties().Create(ctx, faculty); err != nil {
			return err
		}
	}
	return nil
}

// BulkUpload creates accounts from a roster sheet. Bad rows are collected
// into the error list and the batch keeps going; the whole import runs in
// one transaction so a crash mid-file leaves nothing behind.
func (s *UserService) BulkUpload(ctx context.Context, role, filename string, data []byte) (*dto.BulkUploadResult, error) {
	if !models.ValidRole(role) {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid role %q", role))
	}

	table, err := tabular.ParseBytes(filename, data, 0)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	idCol, err := table.Column("identifier", "ROLL NO", "STAFF NO", "REG NO", "VH NO", "ID")
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	nameCol := table.OptionalColumn("NAME")
	passCol := table.OptionalColumn("PASSWORD")
	yearCol := table.OptionalColumn("YEAR")
	semCol := table.OptionalColumn("SEM")
	secCol := table.OptionalColumn("SECTION", "SEC")
	desigCol := table.OptionalColumn("DESIGNATION")
	dojCol := table.OptionalColumn("DOJ", "JOIN")

	result := &dto.BulkUploadResult{Errors: []string{}}

	err = s.store.InTx(ctx, func(ctx context.Context, tx Store) error {
		for i, row := range table.Rows {
			rowNum := i + 2 // 1-based, after the header

			rawID := tabular.Cell(row, idCol)
			if tabular.SkipIdentifier(rawID, "ROLL NO", "STAFF NO", "REG NO") {
				continue
			}
			userID := helpers.NormalizeCode(rawID)

			req := dto.CreateUserRequest{
				UserID:      userID,
				Password:    tabular.CellOr(row, passCol, userID),
				Role:        role,
				Name:        tabular.Cell(row, nameCol),
				Year:        helpers.AtoiDefault(tabular.Cell(row, yearCol), 1),
				Semester:    helpers.AtoiDefault(tabular.Cell(row, semCol), 1),
				Section:     tabular.CellOr(row, secCol, "A"),
				Designation: tabular.CellOr(row, desigCol, defaultDesignation),
				DOJ:         tabular.Cell(row, dojCol),
			}

			if err := createUserTx(ctx, tx, userID, req); err != nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("row %d (%s): %s", rowNum, userID, err.Error()))
				continue
			}
			result.SuccessCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Message = fmt.Sprintf("Bulk upload finished: %d created, %d failed",
		result.SuccessCount, len(result.Errors))
	logger.Info().Str("role", role).Int("created", result.SuccessCount).
		Int("failed", len(result.Errors)).Msg("Bulk user upload processed")
	return result, nil
}

// GetStudent retrieves one student profile.
func (s *UserService) GetStudent(ctx context.Context, rollNo string) (*models.Student, error) {
	return s.store.Students().GetByRollNo(ctx, helpers.NormalizeCode(rollNo))
}

// ListStudents retrieves student profiles with optional filters.
func (s *UserService) ListStudents(ctx context.Context, year, semester *int, section string) ([]*models.Student, error) {
	return s.store.Students().List(ctx, year, semester, helpers.NormalizeCode(section))
}

// GetFaculty retrieves one faculty profile.
func (s *UserService) GetFaculty(ctx context.Context, staffNo string) (*models.Faculty, error) {
	return s.store.Faculties().GetByStaffNo(ctx, helpers.NormalizeCode(staffNo))
}

// ListFaculties retrieves faculty profiles, optionally by designation.
func (s *UserService) ListFaculties(ctx context.Context, designation string) ([]*models.Faculty, error) {
	return s.store.Faculties().List(ctx, designation)
}

// UpdateStudent applies a partial profile update; a password change lands on
// the account row instead.
func (s *UserService) UpdateStudent(ctx context.Context, rollNo string, req dto.UpdateStudentRequest) error {
	rollNo = helpers.NormalizeCode(rollNo)

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Year != nil {
		fields["year"] = *req.Year
	}
	if req.Semester != nil {
		fields["semester"] = *req.Semester
	}
	if req.Section != nil {
		fields["section"] = helpers.NormalizeCode(*req.Section)
	}
	if req.CGPA != nil {
		fields["cgpa"] = *req.CGPA
	}
	if req.AttendancePercentage != nil {
		fields["attendance_percentage"] = *req.AttendancePercentage
	}

	return s.store.InTx(ctx, func(ctx context.Context, tx Store) error {
		if len(fields) > 0 {
			if err := tx.Students().Update(ctx, rollNo, fields); err != nil {
				return err
			}
		}
		if req.Password != nil {
			return tx.Users().UpdatePassword(ctx, rollNo, *req.Password)
		}
		return nil
	})
}

// UpdateFaculty applies a partial profile update for a faculty member.
func (s *UserService) UpdateFaculty(ctx context.Context, staffNo string, req dto.UpdateFacultyRequest) error {
	staffNo = helpers.NormalizeCode(staffNo)

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Designation != nil {
		fields["designation"] = *req.Designation
	}
	if req.DOJ != nil {
		fields["doj"] = *req.DOJ
	}

	return s.store.InTx(ctx, func(ctx context.Context, tx Store) error {
		if len(fields) > 0 {
			if err := tx.Faculties().Update(ctx, staffNo, fields); err != nil {
				return err
			}
		}
		if req.Password != nil {
			return tx.Users().UpdatePassword(ctx, staffNo, *req.Password)
		}
		return nil
	})
}

// RenameUser changes an account id. The schema cascades the new id through
// the profile row and its dependents (enrollments, course assignments).
func (s *UserService) RenameUser(ctx context.Context, oldID, newID string) error {
	oldID = helpers.NormalizeCode(oldID)
	newID = helpers.NormalizeCode(newID)
	if newID == "" {
		return apperrors.NewBadRequestError("new id must not be empty")
	}
	if oldID == newID {
		return nil
	}
	return s.store.Users().Rename(ctx, oldID, newID)
}

// DeleteStudent removes the enrollments, profile and account of a student.
// The stored profile photo is removed best-effort after the commit.
func (s *UserService) DeleteStudent(ctx context.Context, rollNo string) error {
	rollNo = helpers.NormalizeCode(rollNo)

	student, err := s.store.Students().GetByRollNo(ctx, rollNo)
	if err != nil {
		return err
	}

	err = s.store.InTx(ctx, func(ctx context.Context, tx Store) error {
		if err := tx.Academic().DeleteByStudent(ctx, rollNo); err != nil {
			return err
		}
		if err := tx.Students().Delete(ctx, rollNo); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, rollNo)
	})
	if err != nil {
		return err
	}

	if student.ProfilePic != nil {
		if err := s.storage.DeleteFile(*student.ProfilePic); err != nil {
			logger.Warn().Err(err).Str("rollNo", rollNo).Msg("Could not remove profile photo")
		}
	}
	return nil
}

// DeleteFaculty detaches the member's courses, then removes the profile and
// account. Advisor assignments go with the profile row.
func (s *UserService) DeleteFaculty(ctx context.Context, staffNo string) error {
	staffNo = helpers.NormalizeCode(staffNo)

	faculty, err := s.store.Faculties().GetByStaffNo(ctx, staffNo)
	if err != nil {
		return err
	}

	err = s.store.InTx(ctx, func(ctx context.Context, tx Store) error {
		if err := tx.Courses().DetachFaculty(ctx, staffNo); err != nil {
			return err
		}
		if err := tx.Faculties().Delete(ctx, staffNo); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, staffNo)
	})
	if err != nil {
		return err
	}

	if faculty.ProfilePic != nil {
		if err := s.storage.DeleteFile(*faculty.ProfilePic); err != nil {
			logger.Warn().Err(err).Str("staffNo", staffNo).Msg("Could not remove profile photo")
		}
	}
	return nil
}

// UploadStudentPhoto saves a profile photo and records its URL.
func (s *UserService) UploadStudentPhoto(ctx context.Context, rollNo string, fh *multipart.FileHeader) (string, error) {
	rollNo = helpers.NormalizeCode(rollNo)
	if _, err := s.store.Students().GetByRollNo(ctx, rollNo); err != nil {
		return "", err
	}

	_, url, err := s.storage.SaveUpload("student_"+rollNo, fh)
	if err != nil {
		return "", apperrors.NewBadRequestError(err.Error())
	}
	if err := s.store.Students().SetProfilePic(ctx, rollNo, &url); err != nil {
		return "", err
	}
	return url, nil
}

// UploadFacultyPhoto saves a profile photo and records its URL.
func (s *UserService) UploadFacultyPhoto(ctx context.Context, staffNo string, fh *multipart.FileHeader) (string, error) {
	staffNo = helpers.NormalizeCode(staffNo)
	if _, err := s.store.Faculties().GetByStaffNo(ctx, staffNo); err != nil {
		return "", err
	}

	_, url, err := s.storage.SaveUpload("faculty_"+staffNo, fh)
	if err != nil {
		return "", apperrors.NewBadRequestError(err.Error())
	}
	if err := s.store.Faculties().SetProfilePic(ctx, staffNo, &url); err != nil {
		return "", err
	}
	return url, nil
}

// ToppersOverall returns the top three students by CGPA, optionally
// restricted to one year.
func (s *UserService) ToppersOverall(ctx context.Context, year *int) ([]*models.Student, error) {
	if year == nil {
		return s.store.Students().Toppers(ctx, 3)
	}
	students, err := s.store.Students().List(ctx, year, nil, "")
	if err != nil {
		return nil, err
	}
	sortByCGPA(students)
	if len(students) > 3 {
		students = students[:3]
	}
	return students, nil
}

// ToppersClasswise returns a cohort ordered by CGPA, best first.
func (s *UserService) ToppersClasswise(ctx context.Context, year int, section string) ([]*models.Student, error) {
	students, err := s.store.Students().List(ctx, &year, nil, helpers.NormalizeCode(section))
	if err != nil {
		return nil, err
	}
	sortByCGPA(students)
	return students, nil
}

func sortByCGPA(students []*models.Student) {
	sort.SliceStable(students, func(i, j int) bool {
		return students[i].CGPA > students[j].CGPA
	})
}
