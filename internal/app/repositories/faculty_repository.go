package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/logger"
)

const facultyColumns = "staff_no, name, designation, doj, profile_pic"

// FacultyRepository handles faculty profile rows.
type FacultyRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository.
func NewFacultyRepository(db Querier) *FacultyRepository {
	return &FacultyRepository{db: db, sb: newBuilder()}
}

func scanFaculty(row pgx.Row) (*models.Faculty, error) {
	f := &models.Faculty{}
	var doj *string
	err := row.Scan(&f.StaffNo, &f.Name, &f.Designation, &doj, &f.ProfilePic)
	if err != nil {
		return nil, err
	}
	if doj != nil {
		f.DOJ = *doj
	}
	return f, nil
}

// Create inserts a faculty profile.
func (r *FacultyRepository) Create(ctx context.Context, f *models.Faculty) error {
	sql, args, err := r.sb.Insert("faculties").
		Columns("staff_no", "name", "designation", "doj").
		Values(f.StaffNo, f.Name, f.Designation, f.DOJ).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create faculty query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("staffNo", f.StaffNo).Msg("Error creating faculty")
		return fmt.Errorf("error creating faculty: %w", err)
	}
	return nil
}

// GetByStaffNo retrieves a faculty member by staff number.
func (r *FacultyRepository) GetByStaffNo(ctx context.Context, staffNo string) (*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns).
		From("faculties").
		Where(squirrel.Eq{"staff_no": staffNo}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	f, err := scanFaculty(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Str("staffNo", staffNo).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting faculty: %w", err)
	}
	return f, nil
}

// List retrieves faculty members, optionally filtered by designation.
func (r *FacultyRepository) List(ctx context.Context, designation string) ([]*models.Faculty, error) {
	q := r.sb.Select(facultyColumns).
		From("faculties").
		OrderBy("name ASC")
	if designation != "" {
		q = q.Where(squirrel.Eq{"designation": designation})
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list faculties query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying faculties")
		return nil, fmt.Errorf("error querying faculties: %w", err)
	}
	defer rows.Close()

	faculties := []*models.Faculty{}
	for rows.Next() {
		f, err := scanFaculty(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculties = append(faculties, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}
	return faculties, nil
}

// Update applies a partial profile update built by the service layer.
func (r *FacultyRepository) Update(ctx context.Context, staffNo string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	sql, args, err := r.sb.Update("faculties").
		SetMap(fields).
		Where(squirrel.Eq{"staff_no": staffNo}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("staffNo", staffNo).Msg("Error updating faculty")
		return fmt.Errorf("error updating faculty: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}
	return nil
}

// SetProfilePic stores the served URL of the faculty member's photo.
func (r *FacultyRepository) SetProfilePic(ctx context.Context, staffNo string, url *string) error {
	sql, args, err := r.sb.Update("faculties").
		Set("profile_pic", url).
		Where(squirrel.Eq{"staff_no": staffNo}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set profile pic query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("staffNo", staffNo).Msg("Error setting faculty profile pic")
		return fmt.Errorf("error setting profile pic: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}
	return nil
}

// Delete removes a faculty profile. Courses taught by the member must be
// detached first; see CourseRepository.DetachFaculty.
func (r *FacultyRepository) Delete(ctx context.Context, staffNo string) error {
	sql, args, err := r.sb.Delete("faculties").
		Where(squirrel.Eq{"staff_no": staffNo}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("staffNo", staffNo).Msg("Error deleting faculty")
		return fmt.Errorf("error deleting faculty: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}
	return nil
}
