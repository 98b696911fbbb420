package feature

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Compare orders loci by (reference id, left position). Right position and
// orientation are ignored so that sorting matches the order expected by
// coordinate-sorted genome tooling.
func Compare(a, b Locus) int {
	if c := cmp.Compare(a.ReferenceID(), b.ReferenceID()); c != 0 {
		return c
	}
	return cmp.Compare(a.LeftPos(), b.LeftPos())
}

// Sort sorts features in place by Compare. Ties keep their input order.
func Sort[L Locus](loci []L) {
	slices.SortStableFunc(loci, func(a, b L) int { return Compare(a, b) })
}

// IsSorted reports whether loci are in Compare order.
func IsSorted[L Locus](loci []L) bool {
	return slices.IsSortedFunc(loci, func(a, b L) int { return Compare(a, b) })
}

// Compare orders f relative to other; see the package-level Compare.
func (f *Feature[T]) Compare(other Locus) int { return Compare(f, other) }

// Less reports whether f sorts before other.
func (f *Feature[T]) Less(other Locus) bool { return Compare(f, other) < 0 }

// LeftOf reports whether f lies entirely to the left of other with no
// overlap, or on an earlier reference.
func (f *Feature[T]) LeftOf(other Locus) bool {
	if f.ref != other.ReferenceID() {
		return f.ref < other.ReferenceID()
	}
	return f.right < other.LeftPos()
}

// RightOf reports whether f lies entirely to the right of other with no
// overlap, or on a later reference.
func (f *Feature[T]) RightOf(other Locus) bool {
	if f.ref != other.ReferenceID() {
		return f.ref > other.ReferenceID()
	}
	return f.left > other.RightPos()
}

// SameAs reports whether f and other share reference, positions and
// orientation. Payloads are not compared.
func (f *Feature[T]) SameAs(other Locus) bool {
	return f.ref == other.ReferenceID() &&
		f.left == other.LeftPos() &&
		f.right == other.RightPos() &&
		f.reverse == other.IsReverse()
}

// Intersects reports whether f and other overlap by at least one position.
func (f *Feature[T]) Intersects(other Locus) bool {
	return f.ref == other.ReferenceID() &&
		f.left <= other.RightPos() &&
		other.LeftPos() <= f.right
}

// overlap returns the shared bounds of f and other.
func (f *Feature[T]) overlap(other Locus) (int, int, error) {
	if !f.Intersects(other) {
		return 0, 0, fmt.Errorf("%w: %v and %d:%d-%d", ErrNoOverlap, f,
			other.ReferenceID(), other.LeftPos(), other.RightPos())
	}
	return max(f.left, other.LeftPos()), min(f.right, other.RightPos()), nil
}

// Intersection returns the overlap of f and other, carrying f's payload and
// orientation.
func (f *Feature[T]) Intersection(other Locus) (*Feature[T], error) {
	left, right, err := f.overlap(other)
	if err != nil {
		return nil, err
	}
	return &Feature[T]{ref: f.ref, left: left, right: right, reverse: f.reverse, data: f.data}, nil
}

// Union returns the span covering both f and other, carrying f's payload and
// orientation. Features that touch without overlapping can be joined.
func (f *Feature[T]) Union(other Locus) (*Feature[T], error) {
	if f.ref != other.ReferenceID() ||
		other.LeftPos() > f.right+1 ||
		other.RightPos() < f.left-1 {
		return nil, fmt.Errorf("%w: %v and %d:%d-%d", ErrNotAdjacentOrOverlapping, f,
			other.ReferenceID(), other.LeftPos(), other.RightPos())
	}
	return &Feature[T]{
		ref:     f.ref,
		left:    min(f.left, other.LeftPos()),
		right:   max(f.right, other.RightPos()),
		reverse: f.reverse,
		data:    f.data,
	}, nil
}

// Progress returns the fraction of the genome lying before f's left
// position. lengths holds the total length of each reference, indexed by
// reference id.
func (f *Feature[T]) Progress(lengths []int) (float64, error) {
	if f.ref >= len(lengths) {
		return 0, fmt.Errorf("%w: reference %d with %d lengths", ErrUnknownReference, f.ref, len(lengths))
	}
	total := 0
	for _, n := range lengths {
		total += n
	}
	if total <= 0 {
		return 0, ErrEmptyGenome
	}
	before := f.left - 1
	for _, n := range lengths[:f.ref] {
		before += n
	}
	return float64(before) / float64(total), nil
}

// ProgressPercent returns Progress as a whole percentage.
func (f *Feature[T]) ProgressPercent(lengths []int) (int, error) {
	p, err := f.Progress(lengths)
	if err != nil {
		return 0, err
	}
	return int(math.Round(100 * p)), nil
}
