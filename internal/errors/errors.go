package errors

import "fmt"

// ErrorCode represents a Fantrack error code.
type ErrorCode string

const (
	ErrValidation     ErrorCode = "VALIDATION"      // 400 (empty title, bad kind/icon/date)
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrImport         ErrorCode = "IMPORT"          // 422 (payload unparseable or wrong shape)
	ErrStorage        ErrorCode = "STORAGE"         // 500, always non-fatal for saves
	ErrSuggestion     ErrorCode = "SUGGESTION"      // 502, always degraded, never propagated
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// TrackError represents a structured error with code, status, and details.
type TrackError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *TrackError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidation creates a 400 error for invalid tracker or task data.
func NewValidation(msg string) *TrackError {
	return &TrackError{
		Code:    ErrValidation,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *TrackError {
	return &TrackError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing tracker or task.
func NewNotFound(identifier string) *TrackError {
	return &TrackError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewImport creates a 422 error for a backup payload that fails to parse
// or lacks the expected shape.
func NewImport(msg string) *TrackError {
	return &TrackError{
		Code:    ErrImport,
		Status:  422,
		Message: msg,
	}
}

// NewStorage creates a 500 error for a persistence failure.
// Callers on the save path log this instead of returning it.
func NewStorage(err error) *TrackError {
	msg := "storage error"
	if err != nil {
		msg = err.Error()
	}
	return &TrackError{
		Code:    ErrStorage,
		Status:  500,
		Message: msg,
	}
}

// NewSuggestion creates a 502 error for an AI collaborator failure.
// The suggestion path converts this to an empty list or placeholder text.
func NewSuggestion(err error) *TrackError {
	msg := "suggestion service failure"
	if err != nil {
		msg = err.Error()
	}
	return &TrackError{
		Code:    ErrSuggestion,
		Status:  502,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *TrackError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &TrackError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a TrackError with the given code.
func Is(err error, code ErrorCode) bool {
	if tErr, ok := err.(*TrackError); ok {
		return tErr.Code == code
	}
	return false
}
