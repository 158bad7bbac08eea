package dto

// CreateCourseRequest creates one course offering for a section.
type CreateCourseRequest struct {
	Code     string  `json:"code" binding:"required"`
	Title    string  `json:"title" binding:"required"`
	Semester int     `json:"semester" binding:"required"`
	Credits  int     `json:"credits"`
	Category *string `json:"category"`
	Section  string  `json:"section" binding:"required"`
}

// AssignFacultyRequest attaches a faculty member to a course.
type AssignFacultyRequest struct {
	FacultyID string `json:"faculty_id" binding:"required"`
}

// EnrollRequest enrolls one student into one course offering.
type EnrollRequest struct {
	RollNo     string `json:"roll_no" binding:"required"`
	CourseCode string `json:"course_code" binding:"required"`
	Section    string `json:"section" binding:"required"`
}
