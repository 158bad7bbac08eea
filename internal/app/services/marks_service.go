package services

import (
	"context"
	"fmt"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/helpers"
	"github.com/vhce/collegehub/internal/pkg/logger"
	"github.com/vhce/collegehub/internal/pkg/tabular"
)

// markSheetBannerRows is the letterhead height of college mark sheets: four
// rows of institution name and exam title above the real header.
const markSheetBannerRows = 4

// markColumns is the closed set of syncable mark fields. Client-supplied
// entity names resolve through this map and nothing else reaches SQL.
var markColumns = map[string]string{
	"cia1_marks":         "cia1_marks",
	"cia1_retest":        "cia1_retest",
	"cia2_marks":         "cia2_marks",
	"cia2_retest":        "cia2_retest",
	"ia1_marks":          "ia1_marks",
	"ia2_marks":          "ia2_marks",
	"subject_attendance": "subject_attendance",
}

// MarksService reads and writes internal assessment marks, including the
// sheet-driven bulk flows.
type MarksService struct {
	store Store
}

// NewMarksService creates a new MarksService.
func NewMarksService(store Store) *MarksService {
	return &MarksService{store: store}
}

// SectionMarks returns the mark sheet of one course section.
func (s *MarksService) SectionMarks(ctx context.Context, courseCode, section string) ([]*models.SectionMark, error) {
	courseCode = helpers.NormalizeCode(courseCode)
	section = helpers.NormalizeCode(section)
	if courseCode == "" || section == "" {
		return nil, apperrors.NewBadRequestError("course_code and section are required")
	}
	return s.store.Academic().SectionMarks(ctx, courseCode, section)
}

// CIAReport returns a student's per-subject marks with the computed total:
// the better of each CIA attempt plus both internal assessments.
func (s *MarksService) CIAReport(ctx context.Context, rollNo string) ([]*dto.CIAMarkRow, error) {
	rollNo = helpers.NormalizeCode(rollNo)
	records, err := s.store.Academic().ListByStudent(ctx, rollNo)
	if err != nil {
		return nil, err
	}

	report := []*dto.CIAMarkRow{}
	for _, ad := range records {
		row := &dto.CIAMarkRow{
			CourseCode: ad.CourseCode,
			Subject:    ad.Subject,
			CIA1Marks:  ad.CIA1Marks,
			CIA1Retest: ad.CIA1Retest,
			CIA2Marks:  ad.CIA2Marks,
			CIA2Retest: ad.CIA2Retest,
			IA1Marks:   ad.IA1Marks,
			IA2Marks:   ad.IA2Marks,
		}
		row.Total = maxFloat(ad.CIA1Marks, ad.CIA1Retest) +
			maxFloat(ad.CIA2Marks, ad.CIA2Retest) +
			ad.IA1Marks + ad.IA2Marks
		report = append(report, row)
	}
	return report, nil
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Sync applies a full-record mark update to one (student, course) row.
func (s *MarksService) Sync(ctx context.Context, req dto.SyncMarksRequest) error {
	rollNo := helpers.NormalizeCode(req.RollNo)
	courseCode := helpers.NormalizeCode(req.CourseCode)

	fields := map[string]any{}
	if req.CIA1Marks != nil {
		fields["cia1_marks"] = *req.CIA1Marks
	}
	if req.CIA1Retest != nil {
		fields["cia1_retest"] = *req.CIA1Retest
	}
	if req.CIA2Marks != nil {
		fields["cia2_marks"] = *req.CIA2Marks
	}
	if req.CIA2Retest != nil {
		fields["cia2_retest"] = *req.CIA2Retest
	}
	if req.IA1Marks != nil {
		fields["ia1_marks"] = *req.IA1Marks
	}
	if req.IA2Marks != nil {
		fields["ia2_marks"] = *req.IA2Marks
	}
	if req.SubjectAttendance != nil {
		fields["subject_attendance"] = *req.SubjectAttendance
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		return apperrors.NewBadRequestError("no mark fields to update")
	}

	return s.store.Academic().UpdateFields(ctx, rollNo, courseCode, fields)
}

// ProcessSheet parses an uploaded mark sheet into preview entries without
// writing anything. The sheet's four banner rows are skipped; the roll
// number, student name and mark columns are located by header substring,
// the mark column being whichever header mentions the course code.
func (s *MarksService) ProcessSheet(ctx context.Context, courseCode, filename string, data []byte) (*dto.ProcessedSheet, error) {
	courseCode = helpers.NormalizeCode(courseCode)
	if courseCode == "" {
		return nil, apperrors.NewBadRequestError("course_code is required")
	}

	table, err := tabular.ParseBytes(filename, data, markSheetBannerRows)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	idCol, err := table.Column("roll number", "VH NO", "REG NO", "VHNO", "ROLL NO")
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}
	nameCol := table.OptionalColumn("STUDENT NAME", "NAME")
	markCol, err := table.Column("marks", courseCode)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	sheet := &dto.ProcessedSheet{Data: []dto.MarkEntry{}}
	for _, row := range table.Rows {
		rawID := tabular.Cell(row, idCol)
		if tabular.SkipIdentifier(rawID, "S.NO", "VH NO", "REG NO", "ROLL NO") {
			continue
		}
		sheet.Data = append(sheet.Data, dto.MarkEntry{
			VHNo: helpers.NormalizeCode(rawID),
			Name: tabular.CellOr(row, nameCol, "N/A"),
			Mark: tabular.ParseMark(tabular.Cell(row, markCol)),
		})
	}
	return sheet, nil
}

// BulkSync writes one mark field for many students of a course. Entries
// without a matching enrollment row are skipped silently; the caller gets
// the updated count.
func (s *MarksService) BulkSync(ctx context.Context, req dto.BulkSyncRequest) (*dto.SyncResult, error) {
	column, ok := markColumns[req.Entity]
	if !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown mark field %q", req.Entity))
	}
	courseCode := helpers.NormalizeCode(req.CourseCode)

	result := &dto.SyncResult{Errors: []string{}}
	err := s.store.InTx(ctx, func(ctx context.Context, tx Store) error {
		for _, entry := range req.Data {
			rollNo := helpers.NormalizeCode(entry.VHNo)
			if rollNo == "" {
				continue
			}
			matched, err := tx.Academic().SetMarkColumn(ctx, courseCode, rollNo, column, entry.Mark)
			if err != nil {
				return err
			}
			if matched {
				result.UpdatedCount++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Message = fmt.Sprintf("Synced %s for %d students", req.Entity, result.UpdatedCount)
	logger.Info().Str("courseCode", courseCode).Str("entity", req.Entity).
		Int("updated", result.UpdatedCount).Msg("Bulk mark sync applied")
	return result, nil
}
