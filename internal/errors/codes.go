package errors

import (
	"fmt"
)

// ErrorCode identifies a failure category in the schedule conversion pipeline.
type ErrorCode string

const (
	// ErrCodeInvalidInput indicates an unsupported upload (wrong content type, missing part).
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeExtractionFailed indicates the vision extraction call failed or returned nothing usable.
	ErrCodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"
	// ErrCodeScheduleFormat indicates the extraction response could not be decoded into an event list.
	ErrCodeScheduleFormat ErrorCode = "SCHEDULE_FORMAT"
	// ErrCodeEventField indicates a single event was malformed. Per-event, never fatal.
	ErrCodeEventField ErrorCode = "EVENT_FIELD"
	// ErrCodePersistence indicates the calendar document could not be written.
	ErrCodePersistence ErrorCode = "PERSISTENCE"
	// ErrCodeContextCanceled indicates the request was canceled.
	ErrCodeContextCanceled ErrorCode = "CONTEXT_CANCELED"
)

// PipelineError is a structured error carrying a pipeline failure category.
type PipelineError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *PipelineError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// InvalidInput creates an invalid input error.
func InvalidInput(msg string) *PipelineError {
	return &PipelineError{Code: ErrCodeInvalidInput, Message: msg}
}

// ExtractionFailed creates an extraction failure error.
func ExtractionFailed(msg string, cause error) *PipelineError {
	return &PipelineError{Code: ErrCodeExtractionFailed, Message: msg, Cause: cause}
}

// ScheduleFormat creates a schedule format error.
func ScheduleFormat(msg string, cause error) *PipelineError {
	return &PipelineError{Code: ErrCodeScheduleFormat, Message: msg, Cause: cause}
}

// EventField creates a per-event field error.
func EventField(msg string) *PipelineError {
	return &PipelineError{Code: ErrCodeEventField, Message: msg}
}

// Persistence creates a persistence error.
func Persistence(msg string, cause error) *PipelineError {
	return &PipelineError{Code: ErrCodePersistence, Message: msg, Cause: cause}
}

// ContextCanceled creates a context canceled error.
func ContextCanceled(cause error) *PipelineError {
	return &PipelineError{Code: ErrCodeContextCanceled, Message: "operation canceled", Cause: cause}
}

// Wrap wraps an existing error with a pipeline code.
func Wrap(cause error, code ErrorCode, msg string) *PipelineError {
	return &PipelineError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if pErr, ok := err.(*PipelineError); ok {
		return pErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a PipelineError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if pErr, ok := err.(*PipelineError); ok {
		return pErr.Code
	}
	return defaultCode
}
