package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure independently of any transport. The HTTP layer
// owns the mapping from Kind to status code.
type Kind int

const (
	KindInvalidArgument Kind = iota + 1
	KindNotFound
	KindForbidden
	KindConflict
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is the structured error returned by the service layer. Details, when
// set, is serialized into the response body for caller diagnostics (e.g. the
// first conflicting reservation on an overlap rejection).
type Error struct {
	Kind    Kind
	Message string
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func InvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Conflict(message string, details interface{}) *Error {
	return &Error{Kind: KindConflict, Message: message, Details: details}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the Kind from any error in the chain. Errors that carry no
// Kind are treated as internal failures.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
