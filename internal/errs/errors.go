// Package errs provides the error type shared by every dbscaffold package.
//
// Type mapping, template loading, object storage and sinks all return
// *errs.Error, possibly wrapped with fmt.Errorf and %w. Callers branch on
// the kind with the Is* predicates or KindOf:
//
//	if errs.IsNotFound(err) {
//		// a missing template fails one artifact, not the run
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises an error without exposing subsystem-specific codes.
type ErrKind int

const (
	ErrKindUnknown          ErrKind = iota
	ErrKindNotFound                 // missing template resource, object, bucket
	ErrKindInvalidInput             // absent table/options, bad arguments from the caller
	ErrKindUnmappedType             // database type token has no target type
	ErrKindConnectionFailed         // cannot reach the storage backend
	ErrKindTimeout                  // context deadline / cancellation
	ErrKindPermissionDenied         // access denied / auth failure
)

var kindNames = [...]string{
	ErrKindUnknown:          "unknown",
	ErrKindNotFound:         "not_found",
	ErrKindInvalidInput:     "invalid_input",
	ErrKindUnmappedType:     "unmapped_type",
	ErrKindConnectionFailed: "connection_failed",
	ErrKindTimeout:          "timeout",
	ErrKindPermissionDenied: "permission_denied",
}

func (k ErrKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[ErrKindUnknown]
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name in JSON and YAML.
func (k ErrKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Error is the single error type returned by all dbscaffold subsystems.
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // underlying error, preserved for logging
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// InvalidArgument reports an absent or malformed argument.
func InvalidArgument(msg string) *Error {
	return New(ErrKindInvalidInput, msg)
}

// IsNotFound reports whether err is a missing template, object or bucket.
func IsNotFound(err error) bool {
	return KindOf(err) == ErrKindNotFound
}

// IsInvalidInput reports whether err was caused by bad input from the caller.
func IsInvalidInput(err error) bool {
	return KindOf(err) == ErrKindInvalidInput
}

// IsUnmappedType reports whether err is a database type with no target type.
func IsUnmappedType(err error) bool {
	return KindOf(err) == ErrKindUnmappedType
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return KindOf(err) == ErrKindTimeout
}

// IsConnectionFailed reports whether err is a connectivity or auth failure.
func IsConnectionFailed(err error) bool {
	return KindOf(err) == ErrKindConnectionFailed
}

// IsPermissionDenied reports whether err is an access control failure.
func IsPermissionDenied(err error) bool {
	return KindOf(err) == ErrKindPermissionDenied
}

// KindOf extracts the ErrKind from the first *Error in the chain.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}
