// errors.go - Typed failure kinds for venue service calls
package venue

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a venue service failure.
type ErrorKind string

const (
	// KindUnavailable covers transport failures, non-2xx responses without a
	// usable detail message, and malformed response bodies.
	KindUnavailable ErrorKind = "SERVICE_UNAVAILABLE"
	// KindRejected is a non-2xx response carrying a human-readable detail
	// message from the service; the detail is surfaced verbatim.
	KindRejected ErrorKind = "SERVICE_REJECTED"
	// KindInvalidSelection means a route was requested before both a start
	// and an end node were selected. No network call is made.
	KindInvalidSelection ErrorKind = "INVALID_SELECTION"
)

// Error is a classified venue service failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int // HTTP status when applicable, 0 otherwise
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewUnavailableError creates a KindUnavailable error.
func NewUnavailableError(message string, cause error) *Error {
	if cause != nil {
		message = fmt.Sprintf("%s: %v", message, cause)
	}
	return &Error{Kind: KindUnavailable, Message: message}
}

// NewStatusError creates the error for a non-2xx response: KindRejected with
// the verbatim detail when one was provided, otherwise KindUnavailable with a
// generic status-derived message.
func NewStatusError(status int, detail string) *Error {
	if detail != "" {
		return &Error{Kind: KindRejected, Message: detail, Status: status}
	}
	return &Error{
		Kind:    KindUnavailable,
		Message: fmt.Sprintf("HTTP error %d", status),
		Status:  status,
	}
}

// NewInvalidSelectionError creates a KindInvalidSelection error naming the
// missing selection.
func NewInvalidSelectionError(missing string) *Error {
	return &Error{
		Kind:    KindInvalidSelection,
		Message: fmt.Sprintf("%s location is not selected", missing),
	}
}

// KindOf returns the kind of err, or KindUnavailable for foreign errors so
// callers always have a displayable classification.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnavailable
}
