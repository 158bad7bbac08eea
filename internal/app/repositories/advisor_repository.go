package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/dberrors"
	"github.com/vhce/collegehub/internal/pkg/logger"
)

// AdvisorRepository handles class advisor assignments.
type AdvisorRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewAdvisorRepository creates a new AdvisorRepository.
func NewAdvisorRepository(db Querier) *AdvisorRepository {
	return &AdvisorRepository{db: db, sb: newBuilder()}
}

// Create inserts an advisor assignment and returns its id. One advisor per
// (year, section); a second assignment for the same cohort conflicts.
func (r *AdvisorRepository) Create(ctx context.Context, a *models.ClassAdvisor) (int64, error) {
	sql, args, err := r.sb.Insert("class_advisors").
		Columns("advisor_no", "faculty_id", "year", "semester", "section").
		Values(a.AdvisorNo, a.FacultyID, a.Year, a.Semester, a.Section).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create advisor query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrAdvisorAssigned
		}
		logger.Error().Err(err).Str("facultyID", a.FacultyID).Msg("Error creating advisor assignment")
		return 0, fmt.Errorf("error creating advisor assignment: %w", err)
	}
	return id, nil
}

// ListDetails retrieves all assignments joined with the faculty profile.
func (r *AdvisorRepository) ListDetails(ctx context.Context) ([]*dto.AdvisorDetail, error) {
	sql, args, err := r.sb.Select(
		"ca.id", "ca.advisor_no", "ca.faculty_id", "f.name", "f.designation",
		"ca.year", "ca.semester", "ca.section").
		From("class_advisors ca").
		Join("faculties f ON f.staff_no = ca.faculty_id").
		OrderBy("ca.year ASC", "ca.section ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list advisors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying advisors")
		return nil, fmt.Errorf("error querying advisors: %w", err)
	}
	defer rows.Close()

	advisors := []*dto.AdvisorDetail{}
	for rows.Next() {
		d := &dto.AdvisorDetail{}
		if err := rows.Scan(&d.ID, &d.AdvisorNo, &d.FacultyID, &d.FacultyName,
			&d.Designation, &d.Year, &d.Semester, &d.Section); err != nil {
			return nil, fmt.Errorf("error scanning advisor row: %w", err)
		}
		advisors = append(advisors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating advisor rows: %w", err)
	}
	return advisors, nil
}

// GetByYearSection retrieves the advisor of one cohort.
func (r *AdvisorRepository) GetByYearSection(ctx context.Context, year int, section string) (*models.ClassAdvisor, error) {
	sql, args, err := r.sb.Select("id", "advisor_no", "faculty_id", "year", "semester", "section", "assigned_at").
		From("class_advisors").
		Where(squirrel.Eq{"year": year, "section": section}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get advisor query: %w", err)
	}

	a := &models.ClassAdvisor{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.AdvisorNo, &a.FacultyID,
		&a.Year, &a.Semester, &a.Section, &a.AssignedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdvisorNotFound
		}
		logger.Error().Err(err).Int("year", year).Str("section", section).Msg("Error scanning advisor row")
		return nil, fmt.Errorf("error getting advisor: %w", err)
	}
	return a, nil
}

// GetByFacultyID retrieves the assignment held by one faculty member.
func (r *AdvisorRepository) GetByFacultyID(ctx context.Context, facultyID string) (*models.ClassAdvisor, error) {
	sql, args, err := r.sb.Select("id", "advisor_no", "faculty_id", "year", "semester", "section", "assigned_at").
		From("class_advisors").
		Where(squirrel.Eq{"faculty_id": facultyID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get advisor query: %w", err)
	}

	a := &models.ClassAdvisor{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.AdvisorNo, &a.FacultyID,
		&a.Year, &a.Semester, &a.Section, &a.AssignedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdvisorNotFound
		}
		logger.Error().Err(err).Str("facultyID", facultyID).Msg("Error scanning advisor row")
		return nil, fmt.Errorf("error getting advisor: %w", err)
	}
	return a, nil
}

// Delete removes an advisor assignment by id.
func (r *AdvisorRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("class_advisors").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete advisor query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("advisorID", id).Msg("Error deleting advisor assignment")
		return fmt.Errorf("error deleting advisor assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAdvisorNotFound
	}
	return nil
}
