package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUnauthorized       = errors.New("authentication required")
	ErrTooManyAttempts    = errors.New("too many login attempts")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Batch errors
var (
	ErrBatchNotFound    = NewResourceNotFoundError("Batch not found")
	ErrBatchHasStudents = NewConflictError("Batch still has enrolled students and cannot be deleted")
	ErrInvalidDateRange = NewValidationError("endDate", "End date must not be before start date")
)

// Student errors
var (
	ErrStudentNotFound     = NewResourceNotFoundError("Student not found")
	ErrRollNoExists        = NewCustomError(ErrResourceAlreadyExists, "A student with this roll number already exists").WithField("rollNo")
	ErrPartialEnrollment   = errors.New("student was created but could not be linked to its batch")
	ErrPartialUnenrollment = errors.New("student was unlinked from its batch but could not be deleted")
)

// Course errors
var (
	ErrCourseNotFound   = NewResourceNotFoundError("Course not found")
	ErrCourseNameExists = NewCustomError(ErrResourceAlreadyExists, "A course with this name already exists").WithField("name")
	ErrCourseInUse      = NewConflictError("Course is referenced by a batch and cannot be deleted")
)

// File errors
var (
	ErrFileNotFound = NewResourceNotFoundError("File not found")
	ErrFileTooLarge = NewValidationError("file", "File exceeds the maximum upload size")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) *CustomError {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) *CustomError {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError creates a validation error tagged with the offending field.
func NewValidationError(field, message string) *CustomError {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}

// NewCredentialError reports which credential field did not match.
func NewCredentialError(field, message string) *CustomError {
	return &CustomError{
		Err:     ErrInvalidCredentials,
		Message: message,
		Field:   field,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithField tags the error with the request field it concerns
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}

// AsCustom extracts the outermost CustomError from err, if any.
func AsCustom(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
