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

const materialColumns = "id, course_id, course_code, type, title, file_link, posted_by, created_at"

// MaterialRepository handles uploaded documents and links.
type MaterialRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewMaterialRepository creates a new MaterialRepository.
func NewMaterialRepository(db Querier) *MaterialRepository {
	return &MaterialRepository{db: db, sb: newBuilder()}
}

func scanMaterial(row pgx.Row) (*models.Material, error) {
	m := &models.Material{}
	var courseCode *string
	err := row.Scan(&m.ID, &m.CourseID, &courseCode, &m.Type, &m.Title,
		&m.FileLink, &m.PostedBy, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	if courseCode != nil {
		m.CourseCode = *courseCode
	}
	return m, nil
}

// Create inserts a material row and returns its id.
func (r *MaterialRepository) Create(ctx context.Context, m *models.Material) (int64, error) {
	sql, args, err := r.sb.Insert("materials").
		Columns("course_id", "course_code", "type", "title", "file_link", "posted_by").
		Values(m.CourseID, m.CourseCode, m.Type, m.Title, m.FileLink, m.PostedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create material query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("title", m.Title).Msg("Error creating material")
		return 0, fmt.Errorf("error creating material: %w", err)
	}
	return id, nil
}

// GetByID retrieves a material by id.
func (r *MaterialRepository) GetByID(ctx context.Context, id int64) (*models.Material, error) {
	sql, args, err := r.sb.Select(materialColumns).
		From("materials").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get material query: %w", err)
	}

	m, err := scanMaterial(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMaterialNotFound
		}
		logger.Error().Err(err).Int64("materialID", id).Msg("Error scanning material row")
		return nil, fmt.Errorf("error getting material: %w", err)
	}
	return m, nil
}

// ListByCourseCodes retrieves materials for any of the given course codes,
// newest first.
func (r *MaterialRepository) ListByCourseCodes(ctx context.Context, codes []string) ([]*models.Material, error) {
	if len(codes) == 0 {
		return []*models.Material{}, nil
	}
	return r.listWhere(ctx, squirrel.Eq{"course_code": codes})
}

// ListByCourseID retrieves the materials attached to one course row,
// newest first.
func (r *MaterialRepository) ListByCourseID(ctx context.Context, courseID int64) ([]*models.Material, error) {
	return r.listWhere(ctx, squirrel.Eq{"course_id": courseID})
}

// ListByCodePattern retrieves materials whose course code equals the given
// code or contains it, newest first. Code lookups tolerate suffixed variants
// like "MA3151 (LAB)".
func (r *MaterialRepository) ListByCodePattern(ctx context.Context, code string) ([]*models.Material, error) {
	return r.listWhere(ctx, squirrel.Or{
		squirrel.Eq{"course_code": code},
		squirrel.ILike{"course_code": "%" + code + "%"},
	})
}

// ListByLinkFragment retrieves materials whose stored link contains the
// given path fragment. Advisor documents are looked up this way, since the
// year/section lives in the storage path rather than a column.
func (r *MaterialRepository) ListByLinkFragment(ctx context.Context, fragment string) ([]*models.Material, error) {
	return r.listWhere(ctx, squirrel.ILike{"file_link": "%" + fragment + "%"})
}

// ListAll retrieves every material, newest first.
func (r *MaterialRepository) ListAll(ctx context.Context) ([]*models.Material, error) {
	return r.listWhere(ctx, nil)
}

func (r *MaterialRepository) listWhere(ctx context.Context, cond any) ([]*models.Material, error) {
	q := r.sb.Select(materialColumns).From("materials").OrderBy("created_at DESC")
	if cond != nil {
		q = q.Where(cond)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list materials query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying materials")
		return nil, fmt.Errorf("error querying materials: %w", err)
	}
	defer rows.Close()

	materials := []*models.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning material row: %w", err)
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating material rows: %w", err)
	}
	return materials, nil
}

// Delete removes a material row.
func (r *MaterialRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("materials").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete material query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("materialID", id).Msg("Error deleting material")
		return fmt.Errorf("error deleting material: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMaterialNotFound
	}
	return nil
}

// NormalizeCourseCodes canonicalizes stored course codes to upper-trimmed
// form. Run once at startup to repair historical rows.
func (r *MaterialRepository) NormalizeCourseCodes(ctx context.Context) error {
	if _, err := r.db.Exec(ctx,
		`UPDATE materials SET course_code = UPPER(TRIM(course_code)) WHERE course_code IS NOT NULL AND course_code <> UPPER(TRIM(course_code))`); err != nil {
		return fmt.Errorf("error normalizing material course codes: %w", err)
	}
	if _, err := r.db.Exec(ctx,
		`UPDATE academic_data SET course_code = UPPER(TRIM(course_code)) WHERE course_code <> UPPER(TRIM(course_code))`); err != nil {
		return fmt.Errorf("error normalizing academic course codes: %w", err)
	}
	return nil
}
