package models

// Faculty defines the staff profile based on the 'faculties' table.
// One-to-one with User via staff_no.
type Faculty struct {
	StaffNo     string  `json:"staff_no" db:"staff_no"`
	Name        string  `json:"name" db:"name"`
	Designation string  `json:"designation" db:"designation"`
	DOJ         string  `json:"doj" db:"doj"`
	ProfilePic  *string `json:"profile_pic,omitempty" db:"profile_pic"`
}
