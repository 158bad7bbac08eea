package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
)

func seedMarksStore() *fakeStore {
	store := newFakeStore()
	store.st.students["VH1"] = &models.Student{RollNo: "VH1", Name: "Arun", Semester: 4, Section: "A"}
	store.st.students["VH2"] = &models.Student{RollNo: "VH2", Name: "Babu", Semester: 4, Section: "A"}
	store.st.academic = append(store.st.academic,
		&models.AcademicData{ID: 1, StudentRollNo: "VH1", CourseID: 1, CourseCode: "CS3401", Subject: "Algorithms", Section: "A"},
		&models.AcademicData{ID: 2, StudentRollNo: "VH2", CourseID: 1, CourseCode: "CS3401", Subject: "Algorithms", Section: "A"})
	return store
}

func TestMarksServiceBulkSync(t *testing.T) {
	t.Parallel()

	store := seedMarksStore()
	svc := NewMarksService(store)

	result, err := svc.BulkSync(context.Background(), dto.BulkSyncRequest{
		CourseCode: "cs3401",
		Entity:     "cia1_marks",
		Data: []dto.MarkEntry{
			{VHNo: "vh1", Mark: 42},
			{VHNo: "VH2", Mark: 37.5},
			{VHNo: "VH404", Mark: 50}, // not enrolled: skipped silently
			{VHNo: "", Mark: 10},      // blank id: skipped
		},
	})
	if err != nil {
		t.Fatalf("BulkSync() unexpected error: %v", err)
	}
	if result.UpdatedCount != 2 {
		t.Errorf("UpdatedCount = %d, want 2", result.UpdatedCount)
	}
	if store.st.academic[0].CIA1Marks != 42 || store.st.academic[1].CIA1Marks != 37.5 {
		t.Error("marks not written to enrollment rows")
	}
}

func TestMarksServiceBulkSyncRejectsUnknownEntity(t *testing.T) {
	t.Parallel()

	svc := NewMarksService(seedMarksStore())
	_, err := svc.BulkSync(context.Background(), dto.BulkSyncRequest{
		CourseCode: "CS3401",
		Entity:     "final_grade; DROP TABLE academic_data",
		Data:       []dto.MarkEntry{{VHNo: "VH1", Mark: 1}},
	})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("BulkSync(unknown entity) error = %v, want ErrBadRequest", err)
	}
}

func TestMarksServiceProcessSheet(t *testing.T) {
	t.Parallel()

	svc := NewMarksService(seedMarksStore())

	// Four banner rows above the real header, as exported mark sheets carry.
	sheet := strings.Join([]string{
		"Velammal College of Engineering,,",
		"Department of AI & DS,,",
		"CIA 1 Examination,,",
		",,",
		"S.No,VH NO,Student Name,CS3401 Marks",
		"1,VH1,Arun,42",
		"2,VH2,Babu,AB",
		"3,,blank row,10",
		"4,VH NO,header echo,99",
	}, "\n")

	result, err := svc.ProcessSheet(context.Background(), "CS3401", "cia1.csv", []byte(sheet))
	if err != nil {
		t.Fatalf("ProcessSheet() unexpected error: %v", err)
	}

	if len(result.Data) != 2 {
		t.Fatalf("got %d entries, want 2 (blank and header-echo rows skipped)", len(result.Data))
	}
	if result.Data[0].VHNo != "VH1" || result.Data[0].Mark != 42 {
		t.Errorf("entry 0 = %+v, want VH1/42", result.Data[0])
	}
	if result.Data[1].VHNo != "VH2" || result.Data[1].Mark != 0 {
		t.Errorf("entry 1 = %+v, want VH2 absent scored 0", result.Data[1])
	}
}

func TestMarksServiceProcessSheetNameFallback(t *testing.T) {
	t.Parallel()

	svc := NewMarksService(seedMarksStore())

	// No name column at all, and one blank banner line inside the letterhead.
	sheet := "Velammal College of Engineering,,\nDepartment of AI & DS,,\n\nCIA 1 Examination,,\nS.No,VH NO,CS3401 Marks\n1,VH1,42\n"

	result, err := svc.ProcessSheet(context.Background(), "CS3401", "cia1.csv", []byte(sheet))
	if err != nil {
		t.Fatalf("ProcessSheet() unexpected error: %v", err)
	}
	if len(result.Data) != 1 {
		t.Fatalf("got %d entries, want 1", len(result.Data))
	}
	if result.Data[0].Name != "N/A" {
		t.Errorf("Name = %q, want N/A placeholder", result.Data[0].Name)
	}
}

func TestMarksServiceProcessSheetMissingMarkColumn(t *testing.T) {
	t.Parallel()

	svc := NewMarksService(seedMarksStore())
	sheet := "a,,\nb,,\nc,,\nd,,\nS.No,VH NO,Name\n1,VH1,Arun\n"

	_, err := svc.ProcessSheet(context.Background(), "CS3401", "cia1.csv", []byte(sheet))
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("ProcessSheet(no mark column) error = %v, want ErrBadRequest", err)
	}
}

func TestMarksServiceCIAReportTotals(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.st.academic = append(store.st.academic, &models.AcademicData{
		ID: 1, StudentRollNo: "VH1", CourseID: 1, CourseCode: "CS3401", Subject: "Algorithms",
		CIA1Marks: 30, CIA1Retest: 45, CIA2Marks: 40, CIA2Retest: 20,
		IA1Marks: 8, IA2Marks: 9,
	})

	svc := NewMarksService(store)
	report, err := svc.CIAReport(context.Background(), "vh1")
	if err != nil {
		t.Fatalf("CIAReport() unexpected error: %v", err)
	}
	if len(report) != 1 {
		t.Fatalf("got %d rows, want 1", len(report))
	}
	// Better CIA attempt counts: max(30,45) + max(40,20) + 8 + 9.
	if report[0].Total != 102 {
		t.Errorf("Total = %v, want 102", report[0].Total)
	}
}

func TestMarksServiceSectionMarksRequiresParams(t *testing.T) {
	t.Parallel()

	svc := NewMarksService(seedMarksStore())
	if _, err := svc.SectionMarks(context.Background(), "", "A"); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("SectionMarks(no code) error = %v, want ErrBadRequest", err)
	}

	marks, err := svc.SectionMarks(context.Background(), "cs3401", "a")
	if err != nil {
		t.Fatalf("SectionMarks() unexpected error: %v", err)
	}
	if len(marks) != 2 || marks[0].Name != "Arun" {
		t.Errorf("section sheet = %d rows (first %+v), want both students with names", len(marks), marks[0])
	}
}

func TestMarksServiceSyncUpdatesRecord(t *testing.T) {
	t.Parallel()

	store := seedMarksStore()
	svc := NewMarksService(store)

	cia1 := 44.0
	status := "Completed"
	err := svc.Sync(context.Background(), dto.SyncMarksRequest{
		RollNo:     "VH1",
		CourseCode: "CS3401",
		UpdateMarksRequest: dto.UpdateMarksRequest{
			CIA1Marks: &cia1,
			Status:    &status,
		},
	})
	if err != nil {
		t.Fatalf("Sync() unexpected error: %v", err)
	}
	if store.st.academic[0].CIA1Marks != 44 || store.st.academic[0].Status != "Completed" {
		t.Errorf("record after sync = %+v", store.st.academic[0])
	}

	err = svc.Sync(context.Background(), dto.SyncMarksRequest{RollNo: "VH1", CourseCode: "CS3401"})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("Sync(no fields) error = %v, want ErrBadRequest", err)
	}
}
