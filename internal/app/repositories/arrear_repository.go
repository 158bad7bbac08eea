package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/pkg/logger"
)

const arrearColumns = "id, roll_no, name, batch, semester, subject_code, subject_name, batch_id"

// ArrearRepository handles historical arrear rows.
type ArrearRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewArrearRepository creates a new ArrearRepository.
func NewArrearRepository(db Querier) *ArrearRepository {
	return &ArrearRepository{db: db, sb: newBuilder()}
}

// Create inserts one arrear row. Duplicates are allowed; a student can
// legitimately carry the same subject across semesters.
func (r *ArrearRepository) Create(ctx context.Context, a *models.Arrear) error {
	sql, args, err := r.sb.Insert("arrears").
		Columns("roll_no", "name", "batch", "semester", "subject_code", "subject_name", "batch_id").
		Values(a.RollNo, a.Name, a.Batch, a.Semester, a.SubjectCode, a.SubjectName, a.BatchID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create arrear query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("rollNo", a.RollNo).Msg("Error creating arrear")
		return fmt.Errorf("error creating arrear: %w", err)
	}
	return nil
}

// ListByRollNo retrieves a student's arrears.
func (r *ArrearRepository) ListByRollNo(ctx context.Context, rollNo string) ([]*models.Arrear, error) {
	return r.listWhere(ctx, squirrel.Eq{"roll_no": rollNo})
}

// ListAll retrieves every arrear row.
func (r *ArrearRepository) ListAll(ctx context.Context) ([]*models.Arrear, error) {
	return r.listWhere(ctx, nil)
}

// CountByBatchID reports how many rows an import batch wrote.
func (r *ArrearRepository) CountByBatchID(ctx context.Context, batchID string) (int, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("arrears").
		Where(squirrel.Eq{"batch_id": batchID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count batch query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Str("batchID", batchID).Msg("Error counting batch rows")
		return 0, fmt.Errorf("error counting batch rows: %w", err)
	}
	return count, nil
}

func (r *ArrearRepository) listWhere(ctx context.Context, cond any) ([]*models.Arrear, error) {
	q := r.sb.Select(arrearColumns).From("arrears").OrderBy("roll_no ASC", "subject_code ASC")
	if cond != nil {
		q = q.Where(cond)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list arrears query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying arrears")
		return nil, fmt.Errorf("error querying arrears: %w", err)
	}
	defer rows.Close()

	arrears := []*models.Arrear{}
	for rows.Next() {
		a := &models.Arrear{}
		var name, batch, semester, subjectCode, subjectName, batchID *string
		if err := rows.Scan(&a.ID, &a.RollNo, &name, &batch, &semester, &subjectCode, &subjectName, &batchID); err != nil {
			return nil, fmt.Errorf("error scanning arrear row: %w", err)
		}
		if name != nil {
			a.Name = *name
		}
		if batch != nil {
			a.Batch = *batch
		}
		if semester != nil {
			a.Semester = *semester
		}
		if subjectCode != nil {
			a.SubjectCode = *subjectCode
		}
		if subjectName != nil {
			a.SubjectName = *subjectName
		}
		if batchID != nil {
			a.BatchID = *batchID
		}
		arrears = append(arrears, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating arrear rows: %w", err)
	}
	return arrears, nil
}

// DeleteMatching removes the rows of one batch that match a (roll, subject)
// pair re-read from the retained sheet, and reports how many went.
func (r *ArrearRepository) DeleteMatching(ctx context.Context, batchID, rollNo, subjectCode string) (int64, error) {
	sql, args, err := r.sb.Delete("arrears").
		Where(squirrel.Eq{"batch_id": batchID, "roll_no": rollNo, "subject_code": subjectCode}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete arrears query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("batchID", batchID).Str("rollNo", rollNo).Msg("Error deleting arrears")
		return 0, fmt.Errorf("error deleting arrears: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
