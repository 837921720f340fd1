// Package simerr defines the four error kinds surfaced by nbody.space's
// integration core (spec §7). The core never logs and never retries
// silently; every failure path returns one of these, wrapped with
// github.com/pkg/errors so a caller can recover the original cause via
// errors.Cause while still getting a typed Is/As target.
package simerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind distinguishes the four error categories named in spec §7.
type Kind int

const (
	// KindOutOfRange marks a query outside a source's validity window.
	KindOutOfRange Kind = iota
	// KindNotFound marks an unknown body or particle name.
	KindNotFound
	// KindNumerical marks a non-convergent solve or a non-finite result.
	KindNumerical
	// KindInvariantViolation marks a programming/configuration misuse.
	KindInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case KindOutOfRange:
		return "OutOfRangeError"
	case KindNotFound:
		return "NotFoundError"
	case KindNumerical:
		return "NumericalError"
	case KindInvariantViolation:
		return "InvariantViolation"
	default:
		return "UnknownError"
	}
}

// Error is the concrete error type returned across package boundaries.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Cause implements github.com/pkg/errors' causer interface.
func (e *Error) Cause() error { return e.cause }

// Unwrap supports the standard library's errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, simerr.OutOfRange("", nil)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func newError(kind Kind, msg string, cause error) *Error {
	var wrapped error
	if cause != nil {
		wrapped = errors.WithStack(cause)
	}
	return &Error{Kind: kind, Message: msg, cause: wrapped}
}

// OutOfRange builds an OutOfRangeError.
func OutOfRange(msg string, cause error) *Error { return newError(KindOutOfRange, msg, cause) }

// NotFound builds a NotFoundError.
func NotFound(msg string, cause error) *Error { return newError(KindNotFound, msg, cause) }

// Numerical builds a NumericalError.
func Numerical(msg string, cause error) *Error { return newError(KindNumerical, msg, cause) }

// InvariantViolation builds an InvariantViolation error.
func InvariantViolation(msg string, cause error) *Error {
	return newError(KindInvariantViolation, msg, cause)
}

// Is reports whether err is a *Error of the given kind, walking Cause()
// chains with github.com/pkg/errors semantics; the first *Error found
// decides. A wrapper that offers only Unwrap is not walked.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind == kind
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			return false
		}
		err = cause.Cause()
	}
	return false
}
