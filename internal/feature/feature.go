// Package feature provides genomic features: coordinate-anchored entities on
// a linear reference sequence, and positional arrays that carry one value per
// covered base.
//
// Coordinates are 1-based and inclusive. Left and right are fixed by the
// reference; start and end follow the strand's direction of travel.
package feature

import (
	"fmt"
	"iter"
)

// Locus is anything with coordinates on a reference. Both *Feature and
// *Array implement it, which allows comparisons across payload types.
type Locus interface {
	ReferenceID() int
	LeftPos() int
	RightPos() int
	IsReverse() bool
}

// Feature is a span on one reference with an arbitrary payload.
// Features without orientation are represented as forward.
type Feature[T any] struct {
	ref     int
	left    int
	right   int
	reverse bool
	data    T
}

// New creates a feature covering [left, right] on reference ref.
func New[T any](ref, left, right int, reverse bool, data T) (*Feature[T], error) {
	if ref < 0 {
		return nil, fmt.Errorf("%w: negative reference id %d", ErrUnknownReference, ref)
	}
	if left < 1 {
		return nil, fmt.Errorf("%w: left position %d is not 1-based", ErrInvalidRange, left)
	}
	if right < left {
		return nil, fmt.Errorf("%w: right position %d < left position %d", ErrInvalidRange, right, left)
	}
	return &Feature[T]{ref: ref, left: left, right: right, reverse: reverse, data: data}, nil
}

// NewPosition creates a single-position feature.
func NewPosition[T any](ref, pos int, reverse bool, data T) (*Feature[T], error) {
	return New(ref, pos, pos, reverse, data)
}

// From copies the coordinates and orientation of l and attaches data.
func From[T any](l Locus, data T) *Feature[T] {
	return &Feature[T]{
		ref:     l.ReferenceID(),
		left:    l.LeftPos(),
		right:   l.RightPos(),
		reverse: l.IsReverse(),
		data:    data,
	}
}

// ReferenceID returns the index of the feature's reference.
func (f *Feature[T]) ReferenceID() int { return f.ref }

// LeftPos returns the leftmost covered position.
func (f *Feature[T]) LeftPos() int { return f.left }

// RightPos returns the rightmost covered position.
func (f *Feature[T]) RightPos() int { return f.right }

// IsReverse reports whether the feature lies on the reverse strand.
func (f *Feature[T]) IsReverse() bool { return f.reverse }

// Data returns the payload.
func (f *Feature[T]) Data() T { return f.data }

// SetData replaces the payload.
func (f *Feature[T]) SetData(data T) { f.data = data }

// StartPos returns the strand-relative start: right on the reverse strand,
// left otherwise.
func (f *Feature[T]) StartPos() int {
	if f.reverse {
		return f.right
	}
	return f.left
}

// EndPos returns the strand-relative end.
func (f *Feature[T]) EndPos() int {
	if f.reverse {
		return f.left
	}
	return f.right
}

// Len returns the number of covered positions.
func (f *Feature[T]) Len() int {
	return f.right - f.left + 1
}

// Copy returns a new feature with the same coordinates and payload.
// The payload itself is shared, not deep-copied.
func (f *Feature[T]) Copy() *Feature[T] {
	c := *f
	return &c
}

// single returns a one-position feature at pos sharing f's payload.
func (f *Feature[T]) single(pos int) *Feature[T] {
	return &Feature[T]{ref: f.ref, left: pos, right: pos, reverse: f.reverse, data: f.data}
}

// Left returns a single-position feature at the left position.
func (f *Feature[T]) Left() *Feature[T] { return f.single(f.left) }

// Right returns a single-position feature at the right position.
func (f *Feature[T]) Right() *Feature[T] { return f.single(f.right) }

// Start returns a single-position feature at the strand-relative start.
func (f *Feature[T]) Start() *Feature[T] { return f.single(f.StartPos()) }

// End returns a single-position feature at the strand-relative end.
func (f *Feature[T]) End() *Feature[T] { return f.single(f.EndPos()) }

// resolve converts a 0-based offset into an absolute position. Negative
// offsets count back from the right end, -1 being the right position.
func (f *Feature[T]) resolve(offset int) (int, error) {
	pos := f.left + offset
	if offset < 0 {
		pos = f.right + offset + 1
	}
	if pos < f.left || pos > f.right {
		return 0, fmt.Errorf("%w: offset %d in %d-%d", ErrOutOfRange, offset, f.left, f.right)
	}
	return pos, nil
}

// At returns a single-position feature at the given 0-based offset from the
// left position.
func (f *Feature[T]) At(offset int) (*Feature[T], error) {
	pos, err := f.resolve(offset)
	if err != nil {
		return nil, err
	}
	return f.single(pos), nil
}

// AtPosition returns a single-position feature at absolute position pos.
func (f *Feature[T]) AtPosition(pos int) (*Feature[T], error) {
	if pos < f.left || pos > f.right {
		return nil, fmt.Errorf("%w: position %d in %d-%d", ErrOutOfRange, pos, f.left, f.right)
	}
	return f.single(pos), nil
}

// sliceBounds resolves the half-open offset range [from, to) into absolute
// inclusive bounds. Negative offsets count back from the right end.
func (f *Feature[T]) sliceBounds(from, to int) (int, int, error) {
	n := f.Len()
	if from < 0 {
		from += n
	}
	if to < 0 {
		to += n
	}
	if from < 0 || to > n || to <= from {
		return 0, 0, fmt.Errorf("%w: slice [%d:%d] of length %d", ErrInvalidRange, from, to, n)
	}
	return f.left + from, f.left + to - 1, nil
}

// Slice returns a new feature covering offsets [from, to) relative to the
// left position.
func (f *Feature[T]) Slice(from, to int) (*Feature[T], error) {
	left, right, err := f.sliceBounds(from, to)
	if err != nil {
		return nil, err
	}
	return &Feature[T]{ref: f.ref, left: left, right: right, reverse: f.reverse, data: f.data}, nil
}

// Positions yields one single-position feature per covered position, from
// left to right regardless of strand. The sequence can be ranged over any
// number of times.
func (f *Feature[T]) Positions() iter.Seq[*Feature[T]] {
	return func(yield func(*Feature[T]) bool) {
		for pos := f.left; pos <= f.right; pos++ {
			if !yield(f.single(pos)) {
				return
			}
		}
	}
}

// String implements fmt.Stringer.
func (f *Feature[T]) String() string {
	strand := '+'
	if f.reverse {
		strand = '-'
	}
	return fmt.Sprintf("%d:%d-%d(%c)", f.ref, f.left, f.right, strand)
}
