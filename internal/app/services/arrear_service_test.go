package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
)

const arrearSheet = `VH NO,Name,Sem,Subject Code,Subject Name
VH1,Arun,3,MA3151,Matrices and Calculus
VH2,Babu,3,PH3151,Engineering Physics
VH999,Ghost,3,MA3151,Matrices and Calculus
`

func seedArrearStore() *fakeStore {
	store := newFakeStore()
	store.st.students["VH1"] = &models.Student{RollNo: "VH1", Name: "Arun", Year: 2, Semester: 3, Section: "A"}
	store.st.students["VH2"] = &models.Student{RollNo: "VH2", Name: "Babu", Year: 2, Semester: 3, Section: "A"}
	return store
}

func TestArrearServicePreview(t *testing.T) {
	t.Parallel()

	svc := NewArrearService(seedArrearStore(), newTestStorage(t))
	resp, err := svc.Preview(context.Background(), 2, 3, "A", "arrears.csv", []byte(arrearSheet))
	if err != nil {
		t.Fatalf("Preview() unexpected error: %v", err)
	}

	if resp.ValidCount != 2 || resp.InvalidCount != 1 {
		t.Fatalf("valid/invalid = %d/%d, want 2/1", resp.ValidCount, resp.InvalidCount)
	}
	if !resp.Rows[0].IsValid || resp.Rows[0].SubjectCode != "MA3151" {
		t.Errorf("row 0 = %+v", resp.Rows[0])
	}
	if resp.Rows[2].IsValid || resp.Rows[2].Status != "Not found in section" {
		t.Errorf("row 2 = %+v, want invalid ghost row", resp.Rows[2])
	}
}

func TestArrearServicePreviewFiltersSemester(t *testing.T) {
	t.Parallel()

	store := seedArrearStore()
	store.st.students["VH2"].Semester = 5 // right year and section, wrong semester
	svc := NewArrearService(store, newTestStorage(t))

	resp, err := svc.Preview(context.Background(), 2, 3, "A", "arrears.csv", []byte(arrearSheet))
	if err != nil {
		t.Fatalf("Preview() unexpected error: %v", err)
	}
	if resp.ValidCount != 1 || resp.InvalidCount != 2 {
		t.Fatalf("valid/invalid = %d/%d, want 1/2", resp.ValidCount, resp.InvalidCount)
	}
	if resp.Rows[1].IsValid {
		t.Errorf("row 1 = %+v, want flagged out of the semester cohort", resp.Rows[1])
	}
}

func TestArrearServicePreviewFillsMissingCells(t *testing.T) {
	t.Parallel()

	sheet := "VH NO,Subject Code\nVH1,MA3151\nVH999,PH3151\n"
	svc := NewArrearService(seedArrearStore(), newTestStorage(t))

	resp, err := svc.Preview(context.Background(), 2, 3, "A", "arrears.csv", []byte(sheet))
	if err != nil {
		t.Fatalf("Preview() unexpected error: %v", err)
	}
	if len(resp.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(resp.Rows))
	}
	if got := resp.Rows[0]; got.Name != "Arun" || got.SemNo != "N/A" {
		t.Errorf("matched row = %+v, want cohort name with N/A semester", got)
	}
	if got := resp.Rows[1]; got.Name != "Unknown" || got.IsValid {
		t.Errorf("unmatched row = %+v, want Unknown placeholder name", got)
	}
}

func TestArrearServiceUploadAndUndo(t *testing.T) {
	t.Parallel()

	store := seedArrearStore()
	svc := NewArrearService(store, newTestStorage(t))

	result, err := svc.Upload(context.Background(), "2022-2026", "arrears.csv", []byte(arrearSheet))
	if err != nil {
		t.Fatalf("Upload() unexpected error: %v", err)
	}
	if result.SuccessCount != 3 {
		t.Errorf("SuccessCount = %d, want all 3 rows (no cohort check on commit)", result.SuccessCount)
	}
	if result.BatchID == "" {
		t.Fatal("upload did not assign a batch id")
	}
	for _, a := range store.st.arrears {
		if a.BatchID != result.BatchID {
			t.Errorf("row %+v missing batch tag", a)
		}
		if a.Batch != "2022-2026" {
			t.Errorf("row batch = %q, want 2022-2026", a.Batch)
		}
	}

	// Duplicates are allowed: a second upload inserts fresh rows.
	again, err := svc.Upload(context.Background(), "2022-2026", "arrears.csv", []byte(arrearSheet))
	if err != nil {
		t.Fatalf("second Upload() unexpected error: %v", err)
	}
	if len(store.st.arrears) != 6 {
		t.Fatalf("rows after duplicate upload = %d, want 6", len(store.st.arrears))
	}

	// Undo the first batch only; the second import must survive.
	undo, err := svc.Undo(context.Background(), result.BatchID)
	if err != nil {
		t.Fatalf("Undo() unexpected error: %v", err)
	}
	if undo.DeletedCount != 3 {
		t.Errorf("DeletedCount = %d, want 3", undo.DeletedCount)
	}
	if len(store.st.arrears) != 3 {
		t.Fatalf("rows after undo = %d, want the second batch intact", len(store.st.arrears))
	}
	for _, a := range store.st.arrears {
		if a.BatchID != again.BatchID {
			t.Errorf("surviving row %+v belongs to the undone batch", a)
		}
	}

	// A second undo of the same batch finds nothing.
	if _, err := svc.Undo(context.Background(), result.BatchID); !errors.Is(err, apperrors.ErrImportBatchNotFound) {
		t.Errorf("repeat Undo() error = %v, want ErrImportBatchNotFound", err)
	}
}

func TestArrearServiceUploadFillsMissingCells(t *testing.T) {
	t.Parallel()

	store := seedArrearStore()
	svc := NewArrearService(store, newTestStorage(t))

	sheet := "VH NO,Subject Code\nVH1,MA3151\n"
	result, err := svc.Upload(context.Background(), "2022-2026", "arrears.csv", []byte(sheet))
	if err != nil {
		t.Fatalf("Upload() unexpected error: %v", err)
	}
	if result.SuccessCount != 1 {
		t.Fatalf("SuccessCount = %d, want 1", result.SuccessCount)
	}
	a := store.st.arrears[0]
	if a.Name != "N/A" || a.Semester != "N/A" {
		t.Errorf("row = %+v, want N/A placeholders for missing name and semester", a)
	}
}

func TestArrearServiceUploadRejectsUnusableSheet(t *testing.T) {
	t.Parallel()

	svc := NewArrearService(seedArrearStore(), newTestStorage(t))

	_, err := svc.Upload(context.Background(), "b", "arrears.pdf", []byte("%PDF"))
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("Upload(pdf) error = %v, want ErrBadRequest", err)
	}

	noRoll := "Name,Subject Code\nArun,MA3151\n"
	if _, err := svc.Upload(context.Background(), "b", "arrears.csv", []byte(noRoll)); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("Upload(no roll column) error = %v, want ErrBadRequest", err)
	}
}

func TestArrearServiceListByStudent(t *testing.T) {
	t.Parallel()

	store := seedArrearStore()
	store.st.arrears = append(store.st.arrears,
		&models.Arrear{ID: 1, RollNo: "VH1", SubjectCode: "MA3151"},
		&models.Arrear{ID: 2, RollNo: "VH2", SubjectCode: "PH3151"})

	svc := NewArrearService(store, newTestStorage(t))
	arrears, err := svc.ListByStudent(context.Background(), " vh1 ")
	if err != nil {
		t.Fatalf("ListByStudent() unexpected error: %v", err)
	}
	if len(arrears) != 1 || arrears[0].SubjectCode != "MA3151" {
		t.Errorf("arrears = %+v, want VH1's single record", arrears)
	}
}

func TestArrearColumnsDetectMessyHeaders(t *testing.T) {
	t.Parallel()

	sheet := "S.No, reg no of student ,STUDENT NAME,SEM NO,SUB CODE,SUBJECT\n1,VH1,Arun,3,MA3151,Maths\n"
	svc := NewArrearService(seedArrearStore(), newTestStorage(t))

	resp, err := svc.Preview(context.Background(), 2, 3, "A", "arrears.csv", []byte(sheet))
	if err != nil {
		t.Fatalf("Preview() unexpected error: %v", err)
	}
	if len(resp.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(resp.Rows))
	}
	row := resp.Rows[0]
	if row.VHNo != "VH1" || row.SubjectCode != "MA3151" || !strings.EqualFold(row.Name, "Arun") {
		t.Errorf("row = %+v, columns not detected from messy headers", row)
	}
}
