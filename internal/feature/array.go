package feature

import (
	"fmt"
	"iter"
	"slices"
)

// Array is a feature holding one value per covered position. The length of
// its data always equals Len(); every mutating method keeps the two aligned.
//
// Positions exposed by the array are absolute, so values keep their
// coordinates when the array grows or shrinks at either end. Values needed
// to fill new positions come from the default producer given at
// construction.
//
// Comparison methods (Compare, LeftOf, RightOf, SameAs, Intersects) and
// SwitchStrand are promoted unchanged from Feature. The embedded feature is
// unexported so its coordinates can only move through Array's own methods.
type Array[T comparable] struct {
	span[[]T]
	produce func() T
}

// span names the feature embedded in Array without exporting it.
type span[T any] = Feature[T]

func zeroProducer[T any]() func() T {
	return func() T {
		var zero T
		return zero
	}
}

// NewArray creates an array over [left, right] with the given data, which
// must hold exactly right-left+1 values. The array keeps its own copy of
// data. A nil produce fills new positions with T's zero value.
func NewArray[T comparable](ref, left, right int, reverse bool, data []T, produce func() T) (*Array[T], error) {
	f, err := New[[]T](ref, left, right, reverse, nil)
	if err != nil {
		return nil, err
	}
	if len(data) != f.Len() {
		return nil, fmt.Errorf("%w: %d values for %d positions", ErrLengthMismatch, len(data), f.Len())
	}
	if produce == nil {
		produce = zeroProducer[T]()
	}
	f.data = slices.Clone(data)
	return &Array[T]{span: *f, produce: produce}, nil
}

// NewFilledArray creates an array over [left, right] whose values all come
// from produce.
func NewFilledArray[T comparable](ref, left, right int, reverse bool, produce func() T) (*Array[T], error) {
	f, err := New[[]T](ref, left, right, reverse, nil)
	if err != nil {
		return nil, err
	}
	if produce == nil {
		produce = zeroProducer[T]()
	}
	a := &Array[T]{span: *f, produce: produce}
	a.data = a.defaults(f.Len())
	return a, nil
}

func (a *Array[T]) defaults(n int) []T {
	vs := make([]T, n)
	for i := range vs {
		vs[i] = a.produce()
	}
	return vs
}

// derive builds an array over [left, right] with data, sharing a's strand and
// producer. data must already have the right length.
func (a *Array[T]) derive(left, right int, data []T) *Array[T] {
	return &Array[T]{
		span:    span[[]T]{ref: a.ref, left: left, right: right, reverse: a.reverse, data: data},
		produce: a.produce,
	}
}

// SetData replaces the values. data must cover the span exactly.
func (a *Array[T]) SetData(data []T) error {
	if len(data) != a.Len() {
		return fmt.Errorf("%w: %d values for %d positions", ErrLengthMismatch, len(data), a.Len())
	}
	a.data = data
	return nil
}

// Copy returns an independent copy of the array.
func (a *Array[T]) Copy() *Array[T] {
	return a.derive(a.left, a.right, slices.Clone(a.data))
}

// Value returns the value at a 0-based offset; negative offsets count from the
// right end.
func (a *Array[T]) Value(offset int) (T, error) {
	pos, err := a.resolve(offset)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.data[pos-a.left], nil
}

// ValueAt returns the value at absolute position pos.
func (a *Array[T]) ValueAt(pos int) (T, error) {
	if pos < a.left || pos > a.right {
		var zero T
		return zero, fmt.Errorf("%w: position %d in %d-%d", ErrOutOfRange, pos, a.left, a.right)
	}
	return a.data[pos-a.left], nil
}

// Set stores v at a 0-based offset.
func (a *Array[T]) Set(offset int, v T) error {
	pos, err := a.resolve(offset)
	if err != nil {
		return err
	}
	a.data[pos-a.left] = v
	return nil
}

// SetAt stores v at absolute position pos.
func (a *Array[T]) SetAt(pos int, v T) error {
	if pos < a.left || pos > a.right {
		return fmt.Errorf("%w: position %d in %d-%d", ErrOutOfRange, pos, a.left, a.right)
	}
	a.data[pos-a.left] = v
	return nil
}

// At returns a one-position array holding the value at offset.
func (a *Array[T]) At(offset int) (*Array[T], error) {
	pos, err := a.resolve(offset)
	if err != nil {
		return nil, err
	}
	return a.derive(pos, pos, []T{a.data[pos-a.left]}), nil
}

// AtPosition returns a one-position array holding the value at pos.
func (a *Array[T]) AtPosition(pos int) (*Array[T], error) {
	v, err := a.ValueAt(pos)
	if err != nil {
		return nil, err
	}
	return a.derive(pos, pos, []T{v}), nil
}

// Slice returns the sub-array covering offsets [from, to).
func (a *Array[T]) Slice(from, to int) (*Array[T], error) {
	left, right, err := a.sliceBounds(from, to)
	if err != nil {
		return nil, err
	}
	return a.derive(left, right, slices.Clone(a.data[left-a.left:right-a.left+1])), nil
}

// Left returns a one-position array at the left position.
func (a *Array[T]) Left() *Array[T] { return a.derive(a.left, a.left, []T{a.data[0]}) }

// Right returns a one-position array at the right position.
func (a *Array[T]) Right() *Array[T] {
	return a.derive(a.right, a.right, []T{a.data[len(a.data)-1]})
}

// Start returns a one-position array at the strand-relative start.
func (a *Array[T]) Start() *Array[T] {
	if a.reverse {
		return a.Right()
	}
	return a.Left()
}

// End returns a one-position array at the strand-relative end.
func (a *Array[T]) End() *Array[T] {
	if a.reverse {
		return a.Left()
	}
	return a.Right()
}

// Positions yields a single-position feature per covered position, left to
// right, whose payload is the value stored there.
func (a *Array[T]) Positions() iter.Seq[*Feature[T]] {
	return func(yield func(*Feature[T]) bool) {
		for i, v := range a.data {
			pos := a.left + i
			if !yield(&Feature[T]{ref: a.ref, left: pos, right: pos, reverse: a.reverse, data: v}) {
				return
			}
		}
	}
}

// ShiftLeft moves the left position by d, dropping values when the array
// shrinks and filling with defaults when it grows.
func (a *Array[T]) ShiftLeft(d int) error {
	if err := a.span.ShiftLeft(d); err != nil {
		return err
	}
	switch {
	case d > 0:
		a.data = a.data[d:]
	case d < 0:
		a.data = append(a.defaults(-d), a.data...)
	}
	return nil
}

// ShiftRight moves the right position by d, dropping values when the array
// shrinks and filling with defaults when it grows.
func (a *Array[T]) ShiftRight(d int) error {
	if err := a.span.ShiftRight(d); err != nil {
		return err
	}
	switch {
	case d > 0:
		a.data = append(a.data, a.defaults(d)...)
	case d < 0:
		a.data = a.data[:len(a.data)+d]
	}
	return nil
}

// Shift slides the window by d. Values keep their absolute positions; those
// that leave the window are dropped and new positions get defaults.
func (a *Array[T]) Shift(d int) {
	a.span.Shift(d)
	n := len(a.data)
	switch {
	case d >= n || -d >= n:
		a.data = a.defaults(n)
	case d > 0:
		a.data = append(slices.Clone(a.data[d:]), a.defaults(d)...)
	case d < 0:
		a.data = append(a.defaults(-d), a.data[:n+d]...)
	}
}

// ShiftStart moves the strand-relative start by d.
func (a *Array[T]) ShiftStart(d int) error {
	if a.reverse {
		return a.ShiftRight(-d)
	}
	return a.ShiftLeft(d)
}

// ShiftEnd moves the strand-relative end by d.
func (a *Array[T]) ShiftEnd(d int) error {
	if a.reverse {
		return a.ShiftLeft(-d)
	}
	return a.ShiftRight(d)
}

// ShiftForward slides the window d bases in the strand's direction of travel.
func (a *Array[T]) ShiftForward(d int) {
	if a.reverse {
		d = -d
	}
	a.Shift(d)
}

// Move shifts both positions by d without touching the values, which are
// reinterpreted at their new positions.
func (a *Array[T]) Move(d int) {
	a.span.Shift(d)
}

// Plus returns a copy whose window slid by d.
func (a *Array[T]) Plus(d int) *Array[T] {
	c := a.Copy()
	c.Shift(d)
	return c
}

// Minus returns a copy whose window slid by -d.
func (a *Array[T]) Minus(d int) *Array[T] {
	return a.Plus(-d)
}

// Opposite returns a copy on the other strand.
func (a *Array[T]) Opposite() *Array[T] {
	c := a.Copy()
	c.SwitchStrand()
	return c
}

// Append adds v after the right position.
func (a *Array[T]) Append(v T) {
	a.data = append(a.data, v)
	a.right++
}

// Extend adds vs after the right position, in order.
func (a *Array[T]) Extend(vs ...T) {
	a.data = append(a.data, vs...)
	a.right += len(vs)
}

// Pop removes and returns the value at the right position.
func (a *Array[T]) Pop() (T, error) {
	if len(a.data) <= 1 {
		var zero T
		return zero, ErrEmptyArray
	}
	last := len(a.data) - 1
	v := a.data[last]
	a.data = a.data[:last]
	a.right--
	return v, nil
}

// AppendLeft adds v before the left position.
func (a *Array[T]) AppendLeft(v T) {
	a.data = append([]T{v}, a.data...)
	a.left--
}

// ExtendLeft adds vs before the left position. vs keeps its order, so vs[0]
// ends up at the new left position.
func (a *Array[T]) ExtendLeft(vs ...T) {
	a.data = append(slices.Clone(vs), a.data...)
	a.left -= len(vs)
}

// PopLeft removes and returns the value at the left position.
func (a *Array[T]) PopLeft() (T, error) {
	if len(a.data) <= 1 {
		var zero T
		return zero, ErrEmptyArray
	}
	v := a.data[0]
	a.data = a.data[1:]
	a.left++
	return v, nil
}

// Rotate slides the window by steps like Shift, but values leaving one end
// re-enter at the other instead of being replaced by defaults. Positive steps
// move right. The set of values is preserved.
func (a *Array[T]) Rotate(steps int) {
	n := len(a.data)
	k := ((steps % n) + n) % n
	if k != 0 {
		a.data = append(slices.Clone(a.data[k:]), a.data[:k]...)
	}
	a.span.Shift(steps)
}

// Reverse reverses the values in place. Coordinates and strand are unchanged.
func (a *Array[T]) Reverse() {
	slices.Reverse(a.data)
}

// Intersection returns the part of a that overlaps other, with the matching
// values. Values of other are ignored.
func (a *Array[T]) Intersection(other Locus) (*Array[T], error) {
	left, right, err := a.overlap(other)
	if err != nil {
		return nil, err
	}
	return a.derive(left, right, slices.Clone(a.data[left-a.left:right-a.left+1])), nil
}

// Union returns an array spanning a and other. Positions covered by a keep
// their values; the rest get defaults.
func (a *Array[T]) Union(other Locus) (*Array[T], error) {
	whole, err := a.span.Union(other)
	if err != nil {
		return nil, err
	}
	u := a.derive(whole.left, whole.right, nil)
	u.data = append(a.defaults(a.left-whole.left), a.data...)
	u.data = append(u.data, a.defaults(whole.right-a.right)...)
	return u, nil
}

// Count returns the number of positions holding v.
func (a *Array[T]) Count(v T) int {
	n := 0
	for _, x := range a.data {
		if x == v {
			n++
		}
	}
	return n
}

// Index returns the offset of the first position holding v, or -1.
func (a *Array[T]) Index(v T) int {
	return slices.Index(a.data, v)
}

// Position returns the first absolute position holding v.
func (a *Array[T]) Position(v T) (int, bool) {
	i := slices.Index(a.data, v)
	if i < 0 {
		return 0, false
	}
	return a.left + i, true
}
