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

const studentColumns = "roll_no, name, year, semester, section, cgpa, attendance_percentage, profile_pic"

// StudentRepository handles student profile rows.
type StudentRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(db Querier) *StudentRepository {
	return &StudentRepository{db: db, sb: newBuilder()}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	err := row.Scan(&s.RollNo, &s.Name, &s.Year, &s.Semester, &s.Section,
		&s.CGPA, &s.AttendancePercentage, &s.ProfilePic)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a student profile.
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("roll_no", "name", "year", "semester", "section", "cgpa", "attendance_percentage").
		Values(s.RollNo, s.Name, s.Year, s.Semester, s.Section, s.CGPA, s.AttendancePercentage).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("rollNo", s.RollNo).Msg("Error creating student")
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetByRollNo retrieves a student by roll number.
func (r *StudentRepository) GetByRollNo(ctx context.Context, rollNo string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		Where(squirrel.Eq{"roll_no": rollNo}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("rollNo", rollNo).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student: %w", err)
	}
	return s, nil
}

// List retrieves students, optionally filtered by year, semester and section.
func (r *StudentRepository) List(ctx context.Context, year, semester *int, section string) ([]*models.Student, error) {
	q := r.sb.Select(studentColumns).From("students").OrderBy("roll_no ASC")
	if year != nil {
		q = q.Where(squirrel.Eq{"year": *year})
	}
	if semester != nil {
		q = q.Where(squirrel.Eq{"semester": *semester})
	}
	if section != "" {
		q = q.Where(squirrel.Eq{"section": section})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}
	return r.queryStudents(ctx, sql, args)
}

// ListBySemesterSection retrieves the students a new course offering should
// enroll: the current roster of that semester and section.
func (r *StudentRepository) ListBySemesterSection(ctx context.Context, semester int, section string) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		Where(squirrel.Eq{"semester": semester, "section": section}).
		OrderBy("roll_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build roster query: %w", err)
	}
	return r.queryStudents(ctx, sql, args)
}

// Toppers retrieves the highest-CGPA students, best first.
func (r *StudentRepository) Toppers(ctx context.Context, limit uint64) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		Where(squirrel.Gt{"cgpa": 0}).
		OrderBy("cgpa DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build toppers query: %w", err)
	}
	return r.queryStudents(ctx, sql, args)
}

func (r *StudentRepository) queryStudents(ctx context.Context, sql string, args []any) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying students")
		return nil, fmt.Errorf("error querying students: %w", err)
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}

// Update applies a partial profile update built by the service layer.
func (r *StudentRepository) Update(ctx context.Context, rollNo string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	sql, args, err := r.sb.Update("students").
		SetMap(fields).
		Where(squirrel.Eq{"roll_no": rollNo}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("rollNo", rollNo).Msg("Error updating student")
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// SetProfilePic stores the served URL of the student's photo.
func (r *StudentRepository) SetProfilePic(ctx context.Context, rollNo string, url *string) error {
	sql, args, err := r.sb.Update("students").
		Set("profile_pic", url).
		Where(squirrel.Eq{"roll_no": rollNo}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set profile pic query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("rollNo", rollNo).Msg("Error setting student profile pic")
		return fmt.Errorf("error setting profile pic: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student profile.
func (r *StudentRepository) Delete(ctx context.Context, rollNo string) error {
	sql, args, err := r.sb.Delete("students").
		Where(squirrel.Eq{"roll_no": rollNo}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("rollNo", rollNo).Msg("Error deleting student")
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
