package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Scope errors
const (
	// ErrCodeScopeMissing indicates an operation ran with no reachable
	// provider scope.
	ErrCodeScopeMissing ErrorCode = "SCOPE_MISSING"
	// ErrCodeScopeClosed indicates an operation targeted a scope that has
	// already been torn down.
	ErrCodeScopeClosed ErrorCode = "SCOPE_CLOSED"
)

// Resolution errors
const (
	// ErrCodeResolutionConflict indicates a slot was given both render
	// params and a custom render function.
	ErrCodeResolutionConflict ErrorCode = "RESOLUTION_CONFLICT"
	// ErrCodeRenderFailed indicates a plug's renderer returned an error
	// during slot resolution.
	ErrCodeRenderFailed ErrorCode = "RENDER_FAILED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)
