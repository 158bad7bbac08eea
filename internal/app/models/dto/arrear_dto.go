package dto

// ArrearPreviewRow is one parsed sheet row shown before committing an
// arrear import. IsValid is false when required cells are missing; invalid
// rows are surfaced but skipped on upload.
type ArrearPreviewRow struct {
	VHNo        string `json:"vh_no"`
	Name        string `json:"name"`
	SemNo       string `json:"sem_no"`
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
	Status      string `json:"status"`
	IsValid     bool   `json:"is_valid"`
}

// ArrearPreviewResponse wraps the preview rows with counts.
type ArrearPreviewResponse struct {
	Rows         []ArrearPreviewRow `json:"rows"`
	ValidCount   int                `json:"valid_count"`
	InvalidCount int                `json:"invalid_count"`
}

// ArrearUploadResult reports a committed arrear import; BatchID is the
// handle for a later undo.
type ArrearUploadResult struct {
	Message      string   `json:"message"`
	BatchID      string   `json:"batch_id"`
	SuccessCount int      `json:"success_count"`
	Errors       []string `json:"errors"`
}

// ArrearUndoResult reports how many rows an undo removed.
type ArrearUndoResult struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deleted_count"`
}
