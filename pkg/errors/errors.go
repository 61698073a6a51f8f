package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Code classifies a failure for clients and for the response writer.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeConflict     Code = "CONFLICT"
	CodeRateLimit    Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"
)

// Metadata is the per-code serialization policy: which HTTP status to
// send, whether the caller-supplied message may be shown, and whether
// details survive to the wire.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation:   {http.StatusBadRequest, false, "validation failed", true},
	CodeUnauthorized: {http.StatusUnauthorized, false, "authentication required", false},
	CodeForbidden:    {http.StatusForbidden, false, "access denied", false},
	CodeNotFound:     {http.StatusNotFound, false, "resource not found", false},
	// Membership and favourites conflicts (already a member, list full,
	// already favourited) are part of the 400-level wire contract that
	// clients already handle, not 409.
	CodeConflict:   {http.StatusBadRequest, false, "conflict detected", false},
	CodeRateLimit:  {http.StatusTooManyRequests, false, "rate limit exceeded", false},
	CodeInternal:   {http.StatusInternalServerError, true, "internal server error", false},
	CodeDependency: {http.StatusServiceUnavailable, true, "dependency unavailable", true},
}

// MetadataFor resolves a code's policy, treating unknown codes as internal.
func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

// Error is a coded error with an optional cause and details payload.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap attaches a code and message on top of err, keeping err in the
// chain for errors.Is / errors.As.
func Wrap(code Code, err error, message string) *Error {
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

// WithDetails sets the structured payload surfaced to clients when the
// code's metadata allows it.
func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts the first coded error in err's chain, or nil.
func As(err error) *Error {
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
