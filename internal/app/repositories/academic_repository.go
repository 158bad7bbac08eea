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

// AcademicRepository handles enrollment and mark rows in academic_data.
type AcademicRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewAcademicRepository creates a new AcademicRepository.
func NewAcademicRepository(db Querier) *AcademicRepository {
	return &AcademicRepository{db: db, sb: newBuilder()}
}

// CreateEnrollment inserts one enrollment row with zeroed marks. Existing
// (student, course) pairs are left untouched, so fan-out enrollment is
// idempotent.
func (r *AcademicRepository) CreateEnrollment(ctx context.Context, ad *models.AcademicData) error {
	sql, args, err := r.sb.Insert("academic_data").
		Columns("student_roll_no", "course_id", "course_code", "subject", "section", "status").
		Values(ad.StudentRollNo, ad.CourseID, ad.CourseCode, ad.Subject, ad.Section, models.StatusPursuing).
		Suffix("ON CONFLICT ON CONSTRAINT academic_data_student_course_key DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).
			Str("rollNo", ad.StudentRollNo).
			Int64("courseID", ad.CourseID).
			Msg("Error creating enrollment")
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// SectionMarks retrieves the mark sheet for a course section: every enrolled
// student's name and mark columns, ordered by roll number.
func (r *AcademicRepository) SectionMarks(ctx context.Context, courseCode, section string) ([]*models.SectionMark, error) {
	sql, args, err := r.sb.Select(
		"s.name", "a.student_roll_no",
		"a.cia1_marks", "a.cia1_retest", "a.ia1_marks",
		"a.cia2_marks", "a.cia2_retest", "a.ia2_marks",
		"a.subject_attendance").
		From("academic_data a").
		Join("students s ON s.roll_no = a.student_roll_no").
		Where(squirrel.Eq{"a.course_code": courseCode, "a.section": section}).
		OrderBy("a.student_roll_no ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build section marks query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseCode", courseCode).Msg("Error querying section marks")
		return nil, fmt.Errorf("error querying section marks: %w", err)
	}
	defer rows.Close()

	marks := []*models.SectionMark{}
	for rows.Next() {
		m := &models.SectionMark{}
		if err := rows.Scan(&m.Name, &m.RollNo,
			&m.CIA1Marks, &m.CIA1Retest, &m.IA1Marks,
			&m.CIA2Marks, &m.CIA2Retest, &m.IA2Marks,
			&m.SubjectAttendance); err != nil {
			return nil, fmt.Errorf("error scanning section mark row: %w", err)
		}
		marks = append(marks, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating section mark rows: %w", err)
	}
	return marks, nil
}

// ListByStudent retrieves a student's enrollment rows for the dashboard.
func (r *AcademicRepository) ListByStudent(ctx context.Context, rollNo string) ([]*models.AcademicData, error) {
	sql, args, err := r.sb.Select(
		"id", "student_roll_no", "course_id", "course_code", "subject", "section",
		"cia1_marks", "cia1_retest", "cia2_marks", "cia2_retest",
		"ia1_marks", "ia2_marks", "subject_attendance", "status").
		From("academic_data").
		Where(squirrel.Eq{"student_roll_no": rollNo}).
		OrderBy("course_code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list academic data query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("rollNo", rollNo).Msg("Error querying academic data")
		return nil, fmt.Errorf("error querying academic data: %w", err)
	}
	defer rows.Close()

	records := []*models.AcademicData{}
	for rows.Next() {
		ad := &models.AcademicData{}
		var subject *string
		if err := rows.Scan(&ad.ID, &ad.StudentRollNo, &ad.CourseID, &ad.CourseCode, &subject, &ad.Section,
			&ad.CIA1Marks, &ad.CIA1Retest, &ad.CIA2Marks, &ad.CIA2Retest,
			&ad.IA1Marks, &ad.IA2Marks, &ad.SubjectAttendance, &ad.Status); err != nil {
			return nil, fmt.Errorf("error scanning academic data row: %w", err)
		}
		if subject != nil {
			ad.Subject = *subject
		}
		records = append(records, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating academic data rows: %w", err)
	}
	return records, nil
}

// UpdateFields applies a partial mark update on one (student, course) row.
func (r *AcademicRepository) UpdateFields(ctx context.Context, rollNo, courseCode string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	sql, args, err := r.sb.Update("academic_data").
		SetMap(fields).
		Where(squirrel.Eq{"student_roll_no": rollNo, "course_code": courseCode}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update marks query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("rollNo", rollNo).Str("courseCode", courseCode).Msg("Error updating marks")
		return fmt.Errorf("error updating marks: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

// SetMarkColumn writes one mark column for one student of a course and
// reports whether an enrollment row matched. The column name comes from a
// closed set validated by the service, never from client input.
func (r *AcademicRepository) SetMarkColumn(ctx context.Context, courseCode, rollNo, column string, value float64) (bool, error) {
	sql, args, err := r.sb.Update("academic_data").
		Set(column, value).
		Where(squirrel.Eq{"course_code": courseCode, "student_roll_no": rollNo}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build set mark query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("rollNo", rollNo).Str("column", column).Msg("Error setting mark column")
		return false, fmt.Errorf("error setting mark: %w", err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// CourseCodesBySubject finds distinct course codes whose stored subject
// title contains the given fragment, case-insensitively. Used as the last
// resort of the material lookup chain.
func (r *AcademicRepository) CourseCodesBySubject(ctx context.Context, fragment string) ([]string, error) {
	sql, args, err := r.sb.Select("DISTINCT course_code").
		From("academic_data").
		Where(squirrel.ILike{"subject": "%" + fragment + "%"}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build subject lookup query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("fragment", fragment).Msg("Error querying subjects")
		return nil, fmt.Errorf("error querying subjects: %w", err)
	}
	defer rows.Close()

	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("error scanning course code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course codes: %w", err)
	}
	return codes, nil
}

// DeleteByCourse removes all enrollment rows of a course before the course
// itself is deleted.
func (r *AcademicRepository) DeleteByCourse(ctx context.Context, courseID int64) error {
	sql, args, err := r.sb.Delete("academic_data").
		Where(squirrel.Eq{"course_id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete enrollments query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error deleting course enrollments")
		return fmt.Errorf("error deleting enrollments: %w", err)
	}
	return nil
}

// DeleteByStudent removes all enrollment rows of a student before the
// student profile is deleted.
func (r *AcademicRepository) DeleteByStudent(ctx context.Context, rollNo string) error {
	sql, args, err := r.sb.Delete("academic_data").
		Where(squirrel.Eq{"student_roll_no": rollNo}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete enrollments query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("rollNo", rollNo).Msg("Error deleting student enrollments")
		return fmt.Errorf("error deleting enrollments: %w", err)
	}
	return nil
}

// GetStatus retrieves the enrollment status of one (student, course) pair.
func (r *AcademicRepository) GetStatus(ctx context.Context, rollNo, courseCode string) (string, error) {
	sql, args, err := r.sb.Select("status").
		From("academic_data").
		Where(squirrel.Eq{"student_roll_no": rollNo, "course_code": courseCode}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build get status query: %w", err)
	}

	var status string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrEnrollmentNotFound
		}
		return "", fmt.Errorf("error getting enrollment status: %w", err)
	}
	return status, nil
}
