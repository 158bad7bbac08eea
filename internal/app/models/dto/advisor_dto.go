package dto

// AssignAdvisorRequest makes a faculty member the advisor of a cohort.
type AssignAdvisorRequest struct {
	FacultyID string `json:"faculty_id" binding:"required"`
	Year      int    `json:"year" binding:"required"`
	Semester  int    `json:"semester" binding:"required"`
	Section   string `json:"section" binding:"required"`
}

// UpdateStudentStatsRequest lets a class advisor maintain the headline
// numbers on a student profile.
type UpdateStudentStatsRequest struct {
	RollNo               string   `json:"roll_no" binding:"required"`
	CGPA                 *float64 `json:"cgpa"`
	AttendancePercentage *float64 `json:"attendance_percentage"`
}

// AdvisorDetail is an advisor row joined with the faculty profile.
type AdvisorDetail struct {
	ID          int64  `json:"id"`
	AdvisorNo   string `json:"advisor_no"`
	FacultyID   string `json:"faculty_id"`
	FacultyName string `json:"faculty_name"`
	Designation string `json:"designation"`
	Year        int    `json:"year"`
	Semester    int    `json:"semester"`
	Section     string `json:"section"`
}
