package models

import "time"

// ClassAdvisor maps a faculty member to the (year, section) cohort they are
// administratively responsible for. At most one advisor per cohort.
type ClassAdvisor struct {
	ID         int64     `json:"id" db:"id"`
	AdvisorNo  string    `json:"advisor_no" db:"advisor_no"`
	FacultyID  string    `json:"faculty_id" db:"faculty_id"`
	Year       int       `json:"year" db:"year"`
	Semester   int       `json:"semester" db:"semester"`
	Section    string    `json:"section" db:"section"`
	AssignedAt time.Time `json:"assigned_at" db:"assigned_at"`
}
