package domain

import "fmt"

// ErrorCode classifies business-rule failures so the transport layer can map
// them to HTTP statuses without inspecting messages.
type ErrorCode string

const (
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidation       ErrorCode = "VALIDATION"
	CodeInvalidState     ErrorCode = "INVALID_STATE"
	CodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeConflict         ErrorCode = "CONFLICT"
)

// Error is a typed business error. Precondition violations are synchronous
// and never retried internally; callers surface the message verbatim.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// NewNotFoundError reports that a resource could not be resolved.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s not found: %s", resource, id)}
}

// NewValidationError reports an invalid argument or malformed input.
func NewValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: message}
}

// NewInvalidStateError reports a transition requested from a state that does
// not permit it.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Code: CodeInvalidState, Message: fmt.Sprintf("invalid transition from %s to %s", from, to)}
}

// NewCapacityExceededError reports that confirming or creating a booking
// would push the confirmed total past the tour's seat cap. The message
// carries the exact number of remaining seats.
func NewCapacityExceededError(remaining int64) *Error {
	return &Error{Code: CodeCapacityExceeded, Message: fmt.Sprintf("not enough capacity: only %d seats remaining", remaining)}
}

// NewForbiddenError reports an operation the actor is not permitted to perform.
func NewForbiddenError(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// NewConflictError reports a concurrent-modification clash.
func NewConflictError(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// CodeOf returns the error code of a domain error, or "" for other errors.
func CodeOf(err error) ErrorCode {
	if de, ok := err.(*Error); ok {
		return de.Code
	}
	return ""
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool { return CodeOf(err) == CodeNotFound }

// IsCapacityExceeded reports whether err is a capacity domain error.
func IsCapacityExceeded(err error) bool { return CodeOf(err) == CodeCapacityExceeded }

// IsInvalidState reports whether err is an invalid-transition domain error.
func IsInvalidState(err error) bool { return CodeOf(err) == CodeInvalidState }
