package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/filestorage"
	"github.com/vhce/collegehub/internal/pkg/helpers"
	"github.com/vhce/collegehub/internal/pkg/logger"
	"github.com/vhce/collegehub/internal/pkg/tabular"
)

const arrearSheetsDir = "arrear_sheets"

// ArrearService imports arrear sheets, keeps the raw file per batch for the
// paired undo, and serves per-student arrear lists.
type ArrearService struct {
	store   Store
	storage *filestorage.LocalStorage
}

// NewArrearService creates a new ArrearService.
func NewArrearService(store Store, storage *filestorage.LocalStorage) *ArrearService {
	return &ArrearService{store: store, storage: storage}
}

type arrearColumns struct {
	roll, name, sem, subjectCode, subjectName int
}

func (s *ArrearService) locateColumns(table *tabular.Table) (*arrearColumns, error) {
	roll, err := table.Column("roll number", "VH NO", "REG NO", "VHNO", "ROLL NO")
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	return &arrearColumns{
		roll:        roll,
		name:        table.OptionalColumn("NAME"),
		sem:         table.OptionalColumn("SEM"),
		subjectCode: table.OptionalColumn("SUBJECT CODE", "SUB CODE", "CODE"),
		subjectName: table.OptionalColumn("SUBJECT NAME", "SUBJECT"),
	}, nil
}

// Preview cross-references an arrear sheet against the given cohort without
// writing anything. Each row is flagged valid when its roll number resolves
// to a student of that year, semester and section.
func (s *ArrearService) Preview(ctx context.Context, year, semester int, section, filename string, data []byte) (*dto.ArrearPreviewResponse, error) {
	table, err := tabular.ParseBytes(filename, data, 0)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	cols, err := s.locateColumns(table)
	if err != nil {
		return nil, err
	}

	cohort, err := s.store.Students().List(ctx, &year, &semester, helpers.NormalizeCode(section))
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(cohort))
	for _, st := range cohort {
		names[st.RollNo] = st.Name
	}

	resp := &dto.ArrearPreviewResponse{Rows: []dto.ArrearPreviewRow{}}
	for _, row := range table.Rows {
		rawID := tabular.Cell(row, cols.roll)
		if tabular.SkipIdentifier(rawID, "VH NO", "REG NO", "ROLL NO") {
			continue
		}
		rollNo := helpers.NormalizeCode(rawID)

		preview := dto.ArrearPreviewRow{
			VHNo:        rollNo,
			Name:        tabular.Cell(row, cols.name),
			SemNo:       tabular.CellOr(row, cols.sem, "N/A"),
			SubjectCode: helpers.NormalizeCode(tabular.CellOr(row, cols.subjectCode, "N/A")),
			SubjectName: tabular.CellOr(row, cols.subjectName, "N/A"),
		}
		if name, ok := names[rollNo]; ok {
			preview.IsValid = true
			preview.Status = "Matched"
			if preview.Name == "" {
				preview.Name = name
			}
			resp.ValidCount++
		} else {
			preview.Status = "Not found in section"
			if preview.Name == "" {
				preview.Name = "Unknown"
			}
			resp.InvalidCount++
		}
		resp.Rows = append(resp.Rows, preview)
	}
	return resp, nil
}

// Upload commits an arrear sheet. Rows insert as flat records tagged with a
// fresh batch id; the raw sheet is retained on disk under that id so the
// batch can be undone later. Duplicate (roll, subject) pairs are allowed.
func (s *ArrearService) Upload(ctx context.Context, batch, filename string, data []byte) (*dto.ArrearUploadResult, error) {
	table, err := tabular.ParseBytes(filename, data, 0)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	cols, err := s.locateColumns(table)
	if err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	result := &dto.ArrearUploadResult{BatchID: batchID, Errors: []string{}}

	err = s.store.InTx(ctx, func(ctx context.Context, tx Store) error {
		for i, row := range table.Rows {
			rawID := tabular.Cell(row, cols.roll)
			if tabular.SkipIdentifier(rawID, "VH NO", "REG NO", "ROLL NO") {
				continue
			}
			arrear := &models.Arrear{
				RollNo:      helpers.NormalizeCode(rawID),
				Name:        tabular.CellOr(row, cols.name, "N/A"),
				Batch:       batch,
				Semester:    tabular.CellOr(row, cols.sem, "N/A"),
				SubjectCode: helpers.NormalizeCode(tabular.CellOr(row, cols.subjectCode, "N/A")),
				SubjectName: tabular.CellOr(row, cols.subjectName, "N/A"),
				BatchID:     batchID,
			}
			if err := tx.Arrears().Create(ctx, arrear); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", i+2, err.Error()))
				continue
			}
			result.SuccessCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Retain the raw sheet, named after the batch, for the paired undo.
	if _, _, err := s.storage.SaveRawTo(arrearSheetsDir, batchID, filename, data); err != nil {
		logger.Error().Err(err).Str("batchID", batchID).Msg("Could not retain arrear sheet")
	}

	result.Message = fmt.Sprintf("Uploaded %d arrear records", result.SuccessCount)
	logger.Info().Str("batchID", batchID).Int("inserted", result.SuccessCount).Msg("Arrear sheet imported")
	return result, nil
}

// Undo reverses one import batch. The retained sheet is re-parsed to decide
// exactly which (roll, subject) rows to delete, limited to rows carrying the
// batch id, then the sheet itself is removed.
func (s *ArrearService) Undo(ctx context.Context, batchID string) (*dto.ArrearUndoResult, error) {
	count, err := s.store.Arrears().CountByBatchID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperrors.ErrImportBatchNotFound
	}

	matches, err := s.storage.FindByPrefix(arrearSheetsDir, batchID+"_")
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, apperrors.ErrImportBatchNotFound
	}
	storedName := matches[0]

	data, err := s.storage.ReadFile(storedName)
	if err != nil {
		return nil, apperrors.ErrImportBatchNotFound
	}
	table, err := tabular.ParseBytes(storedName, data, 0)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	cols, err := s.locateColumns(table)
	if err != nil {
		return nil, err
	}

	result := &dto.ArrearUndoResult{}
	err = s.store.InTx(ctx, func(ctx context.Context, tx Store) error {
		for _, row := range table.Rows {
			rawID := tabular.Cell(row, cols.roll)
			if tabular.SkipIdentifier(rawID, "VH NO", "REG NO", "ROLL NO") {
				continue
			}
			deleted, err := tx.Arrears().DeleteMatching(ctx, batchID,
				helpers.NormalizeCode(rawID),
				helpers.NormalizeCode(tabular.CellOr(row, cols.subjectCode, "N/A")))
			if err != nil {
				return err
			}
			result.DeletedCount += int(deleted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.storage.DeleteFile(storedName); err != nil {
		logger.Warn().Err(err).Str("batchID", batchID).Msg("Could not remove retained arrear sheet")
	}

	result.Message = fmt.Sprintf("Removed %d arrear records", result.DeletedCount)
	logger.Info().Str("batchID", batchID).Int("deleted", result.DeletedCount).Msg("Arrear batch undone")
	return result, nil
}

// ListByStudent retrieves one student's arrears.
func (s *ArrearService) ListByStudent(ctx context.Context, rollNo string) ([]*models.Arrear, error) {
	return s.store.Arrears().ListByRollNo(ctx, helpers.NormalizeCode(rollNo))
}

// ListAll retrieves every arrear record.
func (s *ArrearService) ListAll(ctx context.Context) ([]*models.Arrear, error) {
	return s.store.Arrears().ListAll(ctx)
}
