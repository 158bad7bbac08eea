package dto

// UpdateMarksRequest sets mark and attendance fields on one enrollment row.
// Pointers distinguish "leave unchanged" from an explicit zero.
type UpdateMarksRequest struct {
	CIA1Marks         *float64 `json:"cia1_marks"`
	CIA1Retest        *float64 `json:"cia1_retest"`
	CIA2Marks         *float64 `json:"cia2_marks"`
	CIA2Retest        *float64 `json:"cia2_retest"`
	IA1Marks          *float64 `json:"ia1_marks"`
	IA2Marks          *float64 `json:"ia2_marks"`
	SubjectAttendance *float64 `json:"subject_attendance"`
	Status            *string  `json:"status"`
}

// SyncMarksRequest updates one (student, course) mark row in full.
type SyncMarksRequest struct {
	RollNo     string `json:"roll_no" binding:"required"`
	CourseCode string `json:"course_code" binding:"required"`
	UpdateMarksRequest
}

// CIAMarkRow is one subject line of a student's internal assessment report.
// Total takes the better of each CIA attempt plus both internal assessments.
type CIAMarkRow struct {
	CourseCode string  `json:"course_code"`
	Subject    string  `json:"subject"`
	CIA1Marks  float64 `json:"cia1_marks"`
	CIA1Retest float64 `json:"cia1_retest"`
	CIA2Marks  float64 `json:"cia2_marks"`
	CIA2Retest float64 `json:"cia2_retest"`
	IA1Marks   float64 `json:"ia1_marks"`
	IA2Marks   float64 `json:"ia2_marks"`
	Total      float64 `json:"total"`
}

// MarkEntry is one student's value for a single mark field.
type MarkEntry struct {
	VHNo string  `json:"vh_no" binding:"required"`
	Name string  `json:"name"`
	Mark float64 `json:"mark"`
}

// BulkSyncRequest applies one mark field to many students of a course,
// typically the parsed output of a processed sheet.
type BulkSyncRequest struct {
	CourseCode string      `json:"course_code" binding:"required"`
	Entity     string      `json:"entity" binding:"required"`
	Data       []MarkEntry `json:"data" binding:"required"`
}

// ProcessedSheet is the preview of an uploaded mark sheet: the detected
// columns flattened into entries, ready for review and bulk sync.
type ProcessedSheet struct {
	Data []MarkEntry `json:"data"`
}

// SyncResult reports how many rows a mark sync touched.
type SyncResult struct {
	Message      string   `json:"message"`
	UpdatedCount int      `json:"updated_count"`
	Errors       []string `json:"errors"`
}
