package domain

import (
	"errors"
	"fmt"
)

// Kind enumerates every failure outcome a request can end in.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
)

// Name is the stable wire name of the kind.
func (k Kind) Name() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindUnauthorized:
		return "UnauthorizedError"
	case KindForbidden:
		return "ForbiddenError"
	case KindNotFound:
		return "NotFoundError"
	default:
		return "InternalError"
	}
}

// Issue is a single field-level validation failure.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the typed outcome every stage, service and repository adapter returns
// when a request cannot proceed. Issues is only populated for KindValidation and
// cause only for KindInternal.
type Error struct {
	Kind    Kind
	Message string
	Issues  []Issue
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind.Name(), e.Message, e.cause)
	}
	return e.Kind.Name() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func Validation(issues ...Issue) *Error {
	return &Error{Kind: KindValidation, Message: "Validation Error", Issues: issues}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Internal wraps an unexpected failure. The cause is kept for server-side logs only.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "Something went wrong", cause: cause}
}

// AsError extracts the typed outcome from err. Anything that is not already a
// *Error is reported as an internal failure wrapping err.
func AsError(err error) *Error {
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return Internal(err)
}

// KindOf returns the kind of err, KindInternal for untyped errors.
func KindOf(err error) Kind {
	return AsError(err).Kind
}
