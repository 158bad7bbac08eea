package models

// Role classifies an account. The id doubles as roll number (students),
// staff number (faculty) or the literal "admin".
type Role string

const (
	RoleStudent Role = "Student"
	RoleFaculty Role = "Faculty"
	RoleHOD     Role = "HOD"
	RoleAdmin   Role = "Admin"
)

// ValidRole reports whether s is one of the known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleStudent, RoleFaculty, RoleHOD, RoleAdmin:
		return true
	}
	return false
}

// User defines the account model based on the 'users' table.
// Passwords are stored and compared as plain text; the legacy data this
// system imports carries them that way. See AuthService.
type User struct {
	ID       string `json:"id" db:"id"`
	Role     Role   `json:"role" db:"role"`
	Password string `json:"-" db:"password"`
}
