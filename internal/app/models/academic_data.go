package models

// StatusPursuing is the enrollment status written for auto-created rows.
const StatusPursuing = "Pursuing"

// AcademicData is one enrollment-plus-marks record: exactly one row per
// (student, course). course_code and subject are denormalized copies kept in
// canonical (upper, trimmed) form so sheet imports can match without joins.
type AcademicData struct {
	ID                int64   `json:"id" db:"id"`
	StudentRollNo     string  `json:"student_roll_no" db:"student_roll_no"`
	CourseID          int64   `json:"course_id" db:"course_id"`
	CourseCode        string  `json:"course_code" db:"course_code"`
	Subject           string  `json:"subject" db:"subject"`
	Section           string  `json:"section" db:"section"`
	CIA1Marks         float64 `json:"cia1_marks" db:"cia1_marks"`
	CIA1Retest        float64 `json:"cia1_retest" db:"cia1_retest"`
	CIA2Marks         float64 `json:"cia2_marks" db:"cia2_marks"`
	CIA2Retest        float64 `json:"cia2_retest" db:"cia2_retest"`
	IA1Marks          float64 `json:"ia1_marks" db:"ia1_marks"`
	IA2Marks          float64 `json:"ia2_marks" db:"ia2_marks"`
	SubjectAttendance float64 `json:"subject_attendance" db:"subject_attendance"`
	Status            string  `json:"status" db:"status"`
}

// SectionMark is the joined row the section mark sheet renders: student name
// from students plus the mark columns from academic_data.
type SectionMark struct {
	Name              string  `json:"name"`
	RollNo            string  `json:"roll_no"`
	CIA1Marks         float64 `json:"cia1_marks"`
	CIA1Retest        float64 `json:"cia1_retest"`
	IA1Marks          float64 `json:"ia1_marks"`
	CIA2Marks         float64 `json:"cia2_marks"`
	CIA2Retest        float64 `json:"cia2_retest"`
	IA2Marks          float64 `json:"ia2_marks"`
	SubjectAttendance float64 `json:"subject_attendance"`
}
