package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/dberrors"
	"github.com/vhce/collegehub/internal/pkg/logger"
)

const courseColumns = "id, code, title, semester, credits, category, section, faculty_id"

// CourseRepository handles course offering rows.
type CourseRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(db Querier) *CourseRepository {
	return &CourseRepository{db: db, sb: newBuilder()}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	c := &models.Course{}
	err := row.Scan(&c.ID, &c.Code, &c.Title, &c.Semester, &c.Credits,
		&c.Category, &c.Section, &c.FacultyID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Create inserts a course offering and returns its id.
func (r *CourseRepository) Create(ctx context.Context, c *models.Course) (int64, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("code", "title", "semester", "credits", "category", "section", "faculty_id").
		Values(c.Code, c.Title, c.Semester, c.Credits, c.Category, c.Section, c.FacultyID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrCourseExists
		}
		logger.Error().Err(err).Str("code", c.Code).Msg("Error creating course")
		return 0, fmt.Errorf("error creating course: %w", err)
	}
	return id, nil
}

// GetByID retrieves a course by id.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return c, nil
}

// GetByCodeSection retrieves the single offering of a code for one section.
func (r *CourseRepository) GetByCodeSection(ctx context.Context, code, section string) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns).
		From("courses").
		Where(squirrel.Eq{"code": code, "section": section}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	c, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("code", code).Str("section", section).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return c, nil
}

// FindByCode retrieves all section offerings of a course code, exact match
// first, then case-insensitive.
func (r *CourseRepository) FindByCode(ctx context.Context, code string) ([]*models.Course, error) {
	courses, err := r.listWhere(ctx, squirrel.Eq{"code": code})
	if err != nil {
		return nil, err
	}
	if len(courses) > 0 {
		return courses, nil
	}
	return r.listWhere(ctx, squirrel.ILike{"code": code})
}

// List retrieves courses with optional filters.
func (r *CourseRepository) List(ctx context.Context, semester *int, section, facultyID string) ([]*models.Course, error) {
	conds := squirrel.And{}
	if semester != nil {
		conds = append(conds, squirrel.Eq{"semester": *semester})
	}
	if section != "" {
		conds = append(conds, squirrel.Eq{"section": section})
	}
	if facultyID != "" {
		conds = append(conds, squirrel.Eq{"faculty_id": facultyID})
	}
	if len(conds) == 0 {
		return r.listWhere(ctx, nil)
	}
	return r.listWhere(ctx, conds)
}

// ListBySemesterSection retrieves the offerings a new student of that
// semester and section should be enrolled into.
func (r *CourseRepository) ListBySemesterSection(ctx context.Context, semester int, section string) ([]*models.Course, error) {
	return r.listWhere(ctx, squirrel.Eq{"semester": semester, "section": section})
}

func (r *CourseRepository) listWhere(ctx context.Context, cond any) ([]*models.Course, error) {
	q := r.sb.Select(courseColumns).From("courses").OrderBy("semester ASC", "code ASC")
	if cond != nil {
		q = q.Where(cond)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying courses")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// AssignFaculty sets (or clears, with nil) the teaching faculty of a course.
func (r *CourseRepository) AssignFaculty(ctx context.Context, courseID int64, facultyID *string) error {
	sql, args, err := r.sb.Update("courses").
		Set("faculty_id", facultyID).
		Where(squirrel.Eq{"id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build assign faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error assigning faculty")
		return fmt.Errorf("error assigning faculty: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// DetachFaculty clears the faculty reference on every course the member
// teaches. Run before deleting the faculty row.
func (r *CourseRepository) DetachFaculty(ctx context.Context, facultyID string) error {
	sql, args, err := r.sb.Update("courses").
		Set("faculty_id", nil).
		Where(squirrel.Eq{"faculty_id": facultyID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build detach faculty query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("facultyID", facultyID).Msg("Error detaching faculty from courses")
		return fmt.Errorf("error detaching faculty: %w", err)
	}
	return nil
}

// Delete removes a course offering. Enrollment rows must be removed first;
// see AcademicRepository.DeleteByCourse.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error deleting course")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}
