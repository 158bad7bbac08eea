package models

import "time"

// GlobalCourseCode marks institution-wide materials and announcements that
// are not tied to one course (timetables, planners, advisor docs).
const GlobalCourseCode = "Global"

// Material defines an uploaded document or link based on the 'materials'
// table. CourseID is nil for Global docs.
type Material struct {
	ID         int64     `json:"id" db:"id"`
	CourseID   *int64    `json:"course_id,omitempty" db:"course_id"`
	CourseCode string    `json:"course_code" db:"course_code"`
	Type       string    `json:"type" db:"type"`
	Title      string    `json:"title" db:"title"`
	FileLink   string    `json:"file_link" db:"file_link"`
	PostedBy   string    `json:"posted_by" db:"posted_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
