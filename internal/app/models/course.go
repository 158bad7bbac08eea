package models

// Course defines the course model based on the 'courses' table.
// (code, section) is unique; faculty_id is null for unassigned courses.
type Course struct {
	ID        int64   `json:"id" db:"id"`
	Code      string  `json:"code" db:"code"`
	Title     string  `json:"title" db:"title"`
	Semester  int     `json:"semester" db:"semester"`
	Credits   int     `json:"credits" db:"credits"`
	Category  *string `json:"category,omitempty" db:"category"`
	Section   string  `json:"section" db:"section"`
	FacultyID *string `json:"faculty_id,omitempty" db:"faculty_id"`
}
