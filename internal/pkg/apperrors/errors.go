package apperrors

import "errors"

// Error kinds shared by both applications. Everything an operation can fail
// with belongs to one of these families so callers can react by kind.
var (
	// Resource errors
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrConflict      = errors.New("conflict")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidDateRange = errors.New("start date must not be after end date")

	// Referential errors
	ErrReferenceNotFound = errors.New("referenced record does not exist")

	// Workflow errors
	ErrStateConflict = errors.New("record is in a terminal state")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// Attendance app errors
var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrStudentCodeExists      = errors.New("student ID already exists")
	ErrUserNotFound           = errors.New("user not found")
	ErrUsernameExists         = errors.New("username already exists")
	ErrEmailExists            = errors.New("email already exists")
	ErrAttendanceNotFound     = errors.New("attendance record not found")
	ErrAttendanceExists       = errors.New("attendance already recorded for this student and date")
	ErrAbsenceRequestNotFound = errors.New("absence request not found")
)

// Permit app errors
var (
	ErrClassNotFound    = errors.New("class not found")
	ErrClassNameExists  = errors.New("class name already exists")
	ErrNISExists        = errors.New("NIS already registered")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrAlumniNotFound   = errors.New("alumni record not found")
	ErrPermitNotFound   = errors.New("permit not found")
	ErrPermitTooLong    = errors.New("permit duration exceeds the configured maximum")
	ErrSettingsNotFound = errors.New("system settings have not been initialized")
)

// CustomError carries additional context for an error, most importantly the
// per-field details of a validation failure.
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// NewValidationError creates a validation error with per-field details.
// Keys of fields are field names, values describe what was wrong with them.
func NewValidationError(message string, fields map[string]interface{}) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: fields,
	}
}

// NewConflictError creates an error for uniqueness conflicts with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrAlreadyExists,
		Message: message,
	}
}

// NewStateConflictError creates an error for a workflow transition attempted
// from a terminal state
func NewStateConflictError(message string) error {
	return &CustomError{
		Err:     ErrStateConflict,
		Message: message,
	}
}

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// FieldErrors extracts the per-field details from a validation error, or nil
// when the error carries none.
func FieldErrors(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}

// Is returns whether target or any error in errList matches err
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
