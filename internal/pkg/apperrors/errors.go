package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrPermissionDenied   = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User and profile errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserIDExists    = errors.New("user ID already exists")
	ErrStudentNotFound = errors.New("student not found")
	ErrFacultyNotFound = errors.New("faculty not found")
)

// Course and enrollment errors
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseExists       = errors.New("subject already exists for this section")
	ErrEnrollmentNotFound = errors.New("enrollment record not found")
)

// Content errors
var (
	ErrMaterialNotFound     = errors.New("material not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrAdvisorAssigned      = errors.New("advisor already assigned to this section")
	ErrAdvisorNotFound      = errors.New("class advisor mapping not found")
	ErrImportBatchNotFound  = errors.New("import batch not found")
)

// CustomError carries a user-facing message on top of a sentinel error so
// handlers can both classify (errors.Is) and display something specific.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel.
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// NewBadRequestError creates a bad-request error with a message.
func NewBadRequestError(message string) error {
	return &CustomError{Err: ErrBadRequest, Message: message}
}

// NewConflictError creates a conflict error with a message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewResourceNotFoundError creates a not-found error with a message.
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}
