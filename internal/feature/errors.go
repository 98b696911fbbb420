package feature

import "errors"

// Errors returned by feature and array operations. Callers should test with
// errors.Is since most are wrapped with positional context.
var (
	// ErrInvalidRange is returned when a right position would fall below
	// the left position, or a constructed or sliced range is empty.
	ErrInvalidRange = errors.New("invalid range")

	// ErrOutOfRange is returned when an offset or absolute position falls
	// outside a feature's span.
	ErrOutOfRange = errors.New("position out of range")

	// ErrNoOverlap is returned by Intersection for disjoint features.
	ErrNoOverlap = errors.New("features do not overlap")

	// ErrNotAdjacentOrOverlapping is returned by Union when a gap separates
	// the features or they lie on different references.
	ErrNotAdjacentOrOverlapping = errors.New("features are neither adjacent nor overlapping")

	// ErrLengthMismatch is returned when array data does not cover the span.
	ErrLengthMismatch = errors.New("data length does not match span")

	// ErrEmptyArray is returned when a pop would remove the last position.
	ErrEmptyArray = errors.New("array would become empty")

	// ErrUnknownReference is returned when a reference id cannot be resolved.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrEmptyGenome is returned by Progress when all reference lengths sum to zero.
	ErrEmptyGenome = errors.New("reference lengths sum to zero")
)
