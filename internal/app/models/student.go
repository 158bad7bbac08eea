package models

// Student defines the student profile based on the 'students' table.
// One-to-one with User via roll_no.
type Student struct {
	RollNo               string  `json:"roll_no" db:"roll_no"`
	Name                 string  `json:"name" db:"name"`
	Year                 int     `json:"year" db:"year"`
	Semester             int     `json:"semester" db:"semester"`
	Section              string  `json:"section" db:"section"`
	CGPA                 float64 `json:"cgpa" db:"cgpa"`
	AttendancePercentage float64 `json:"attendance_percentage" db:"attendance_percentage"`
	ProfilePic           *string `json:"profile_pic,omitempty" db:"profile_pic"`
}
