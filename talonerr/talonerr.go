// Package talonerr provides the error taxonomy for this module. It includes the
// stdlib's errors functions so callers don't have to import both packages.
package talonerr

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// Category represents the category of an error.
type Category uint32

const (
	// CatUnknown represents an unknown category. This should not be used.
	CatUnknown Category = 0
	// CatInvalidArgument represents bad input from the caller: an unrecognized
	// scalar-type tag, a malformed pool configuration, and the like.
	CatInvalidArgument Category = 1
	// CatImmutableViolation represents a mutation attempted on a descriptor or
	// value after it has been marked immutable.
	CatImmutableViolation Category = 2
	// CatAllocationFailure represents a pool that cannot satisfy a request:
	// the request exceeds the fixed slot size, a capped pool is at its limit,
	// or the underlying allocator failed.
	CatAllocationFailure Category = 3
	// CatInvariantViolation represents a corrupted descriptor or value reaching
	// an unreachable dispatch branch. It is not locally recoverable.
	CatInvariantViolation Category = 4
)

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CatInvalidArgument:
		return "InvalidArgument"
	case CatImmutableViolation:
		return "ImmutableViolation"
	case CatAllocationFailure:
		return "AllocationFailure"
	case CatInvariantViolation:
		return "InvariantViolation"
	}
	return "Unknown"
}

// Error is an error carrying a Category. It wraps an underlying error that can
// be retrieved with Unwrap.
type Error struct {
	Cat Category
	Err error
}

// Error implements error.
func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Cat, e.Err)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// E creates a new Error with the given category and a formatted message.
func E(c Category, format string, args ...any) error {
	return Error{Cat: c, Err: errors.Errorf(format, args...)}
}

// Wrap annotates err with a category and message while preserving the chain.
func Wrap(c Category, err error, msg string) error {
	if err == nil {
		return nil
	}
	return Error{Cat: c, Err: errors.Wrap(err, msg)}
}

// CategoryOf returns the Category of err, or CatUnknown if err does not carry
// one anywhere in its chain.
func CategoryOf(err error) Category {
	var e Error
	if stderrors.As(err, &e) {
		return e.Cat
	}
	return CatUnknown
}

// Everything below here is a wrapper around the stdlib errors package.
// We do this to prevent having to import the stdlib errors package in every
// file that needs it.

// New returns an error that formats as the given text.
func New(text string) error {
	return stderrors.New(text)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target, and if so, sets
// target to that error value and returns true.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err, if err's type
// contains an Unwrap method returning error. Otherwise, Unwrap returns nil.
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}
