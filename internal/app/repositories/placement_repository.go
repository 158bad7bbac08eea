package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/logger"
)

// PlacementRepository handles companies and placed student records.
type PlacementRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewPlacementRepository creates a new PlacementRepository.
func NewPlacementRepository(db Querier) *PlacementRepository {
	return &PlacementRepository{db: db, sb: newBuilder()}
}

// CreateCompany inserts a company and returns its id.
func (r *PlacementRepository) CreateCompany(ctx context.Context, c *models.Company) (int64, error) {
	sql, args, err := r.sb.Insert("companies").
		Columns("name", "logo_url").
		Values(c.Name, c.LogoURL).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create company query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("name", c.Name).Msg("Error creating company")
		return 0, fmt.Errorf("error creating company: %w", err)
	}
	return id, nil
}

// ListCompanies retrieves all companies.
func (r *PlacementRepository) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	sql, args, err := r.sb.Select("id", "name", "logo_url").
		From("companies").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list companies query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying companies")
		return nil, fmt.Errorf("error querying companies: %w", err)
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		c := &models.Company{}
		if err := rows.Scan(&c.ID, &c.Name, &c.LogoURL); err != nil {
			return nil, fmt.Errorf("error scanning company row: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company rows: %w", err)
	}
	return companies, nil
}

// DeleteCompany removes a company.
func (r *PlacementRepository) DeleteCompany(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("companies").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete company query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("companyID", id).Msg("Error deleting company")
		return fmt.Errorf("error deleting company: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("company not found")
	}
	return nil
}

// CreatePlacedStudent inserts a placement record and returns its id.
func (r *PlacementRepository) CreatePlacedStudent(ctx context.Context, p *models.PlacedStudent) (int64, error) {
	sql, args, err := r.sb.Insert("placed_students").
		Columns("name", "dept", "lpa", "company_name", "photo_url", "linkedin_url").
		Values(p.Name, p.Dept, p.LPA, p.CompanyName, p.PhotoURL, p.LinkedinURL).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create placed student query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("name", p.Name).Msg("Error creating placed student")
		return 0, fmt.Errorf("error creating placed student: %w", err)
	}
	return id, nil
}

// ListPlacedStudents retrieves all placement records, best package first.
func (r *PlacementRepository) ListPlacedStudents(ctx context.Context) ([]*models.PlacedStudent, error) {
	sql, args, err := r.sb.Select("id", "name", "dept", "lpa", "company_name", "photo_url", "linkedin_url").
		From("placed_students").
		OrderBy("lpa DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list placed students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying placed students")
		return nil, fmt.Errorf("error querying placed students: %w", err)
	}
	defer rows.Close()

	placed := []*models.PlacedStudent{}
	for rows.Next() {
		p := &models.PlacedStudent{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Dept, &p.LPA, &p.CompanyName, &p.PhotoURL, &p.LinkedinURL); err != nil {
			return nil, fmt.Errorf("error scanning placed student row: %w", err)
		}
		placed = append(placed, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating placed student rows: %w", err)
	}
	return placed, nil
}

// DeletePlacedStudent removes a placement record.
func (r *PlacementRepository) DeletePlacedStudent(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("placed_students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete placed student query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("placedStudentID", id).Msg("Error deleting placed student")
		return fmt.Errorf("error deleting placed student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("placed student not found")
	}
	return nil
}
