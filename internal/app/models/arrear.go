package models

// Arrear records a subject a student must re-clear, independent of current
// enrollment. Deliberately flat: roll_no and subject_code are plain strings
// with no foreign keys, so historical data survives roster changes.
// BatchID ties the row to the sheet upload that created it, for undo.
type Arrear struct {
	ID          int64  `json:"id" db:"id"`
	RollNo      string `json:"roll_no" db:"roll_no"`
	Name        string `json:"name" db:"name"`
	Batch       string `json:"batch" db:"batch"`
	Semester    string `json:"semester" db:"semester"`
	SubjectCode string `json:"subject_code" db:"subject_code"`
	SubjectName string `json:"subject_name" db:"subject_name"`
	BatchID     string `json:"batch_id,omitempty" db:"batch_id"`
}
