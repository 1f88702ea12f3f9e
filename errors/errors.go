package errors

import (
	"errors"
	"fmt"
)

// AppError is the unified registry error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Common Error Constructors ---

// MissingScope creates a new AppError for an operation invoked with no
// reachable provider scope. Registering or resolving against no registry is
// a programming error, never a silent no-op.
func MissingScope(operation string) *AppError {
	return &AppError{
		Code: ErrCodeScopeMissing, Message: fmt.Sprintf("no provider scope reachable for %s", operation),
		Details: map[string]any{"operation": operation},
	}
}

// ScopeClosed creates a new AppError for an operation against a scope that
// was already torn down.
func ScopeClosed(scopeID string) *AppError {
	return &AppError{
		Code: ErrCodeScopeClosed, Message: "provider scope is closed",
		Details: map[string]any{"scope_id": scopeID},
	}
}

// ConflictingResolution creates a new AppError for a slot configured with
// both render params and a custom render function.
func ConflictingResolution(slot string) *AppError {
	return &AppError{
		Code: ErrCodeResolutionConflict, Message: "params and a custom render function are mutually exclusive",
		Details: map[string]any{"slot": slot},
	}
}

// RenderFailed creates a new AppError for a plug renderer that returned an
// error during slot resolution.
func RenderFailed(slot, id string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeRenderFailed, Message: fmt.Sprintf("renderer for plug %q in slot %q failed", id, slot),
		Details: map[string]any{"slot": slot, "id": id}, Cause: cause,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid input: %s", reason),
		Details: details,
	}
}

// --- Inspection helpers ---

// GetCode returns the error code of err, or empty string if err is not an
// AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsMissingScope reports whether err indicates a missing provider scope.
func IsMissingScope(err error) bool {
	return IsCode(err, ErrCodeScopeMissing)
}

// IsResolutionConflict reports whether err indicates conflicting resolution
// modes.
func IsResolutionConflict(err error) bool {
	return IsCode(err, ErrCodeResolutionConflict)
}
