package dto

// CreateUserRequest provisions a single account with its role profile.
// Profile fields are read per-role: students use year/semester/section,
// faculty use designation/doj.
type CreateUserRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role" binding:"required"`
	Name        string `json:"name"`
	Year        int    `json:"year"`
	Semester    int    `json:"semester"`
	Section     string `json:"section"`
	Designation string `json:"designation"`
	DOJ         string `json:"doj"`
}

// BulkUploadResult reports the per-row outcome of a bulk sheet import.
// Errors keeps going past bad rows so one typo does not hide the rest.
type BulkUploadResult struct {
	Message      string   `json:"message"`
	SuccessCount int      `json:"success_count"`
	Errors       []string `json:"errors"`
}

// UpdateStudentRequest carries the editable student profile fields.
// Pointers distinguish "leave unchanged" from zero values.
type UpdateStudentRequest struct {
	Name                 *string  `json:"name"`
	Year                 *int     `json:"year"`
	Semester             *int     `json:"semester"`
	Section              *string  `json:"section"`
	CGPA                 *float64 `json:"cgpa"`
	AttendancePercentage *float64 `json:"attendance_percentage"`
	Password             *string  `json:"password"`
}

// UpdateFacultyRequest carries the editable faculty profile fields.
type UpdateFacultyRequest struct {
	Name        *string `json:"name"`
	Designation *string `json:"designation"`
	DOJ         *string `json:"doj"`
	Password    *string `json:"password"`
}

// RenameRequest changes a primary identifier (roll no / staff no), cascading
// through the account and dependent rows.
type RenameRequest struct {
	NewID string `json:"new_id" binding:"required"`
}
