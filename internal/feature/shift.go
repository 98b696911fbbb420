package feature

import "fmt"

// Reference-relative mutators: ShiftLeft, ShiftRight, Shift.
// Strand-relative mutators: ShiftStart, ShiftEnd, ShiftForward.
// None of them changes the reference id. They check only that the right
// position stays at or past the left one: unlike New, they let a feature move
// left of position 1, so a window can slide off the start of a reference and
// back again.

func (f *Feature[T]) setBounds(left, right int) error {
	if right < left {
		return fmt.Errorf("%w: right position %d < left position %d", ErrInvalidRange, right, left)
	}
	f.left, f.right = left, right
	return nil
}

// ShiftLeft moves the left position by d. The receiver is unchanged on error.
func (f *Feature[T]) ShiftLeft(d int) error {
	return f.setBounds(f.left+d, f.right)
}

// ShiftRight moves the right position by d. The receiver is unchanged on error.
func (f *Feature[T]) ShiftRight(d int) error {
	return f.setBounds(f.left, f.right+d)
}

// Shift moves both positions by d. The result may lie left of position 1.
func (f *Feature[T]) Shift(d int) {
	f.left += d
	f.right += d
}

// ShiftStart moves the strand-relative start by d. On the reverse strand the
// start is the right position and a positive d moves it leftward.
func (f *Feature[T]) ShiftStart(d int) error {
	if f.reverse {
		return f.ShiftRight(-d)
	}
	return f.ShiftLeft(d)
}

// ShiftEnd moves the strand-relative end by d.
func (f *Feature[T]) ShiftEnd(d int) error {
	if f.reverse {
		return f.ShiftLeft(-d)
	}
	return f.ShiftRight(d)
}

// ShiftForward moves both positions d bases in the strand's direction of
// travel. Like Shift, it may move the feature left of position 1.
func (f *Feature[T]) ShiftForward(d int) {
	if f.reverse {
		d = -d
	}
	f.Shift(d)
}

// SwitchStrand flips the orientation in place.
func (f *Feature[T]) SwitchStrand() {
	f.reverse = !f.reverse
}

// Plus returns a copy shifted by d, leaving f unmodified.
func (f *Feature[T]) Plus(d int) *Feature[T] {
	c := f.Copy()
	c.Shift(d)
	return c
}

// Minus returns a copy shifted by -d, leaving f unmodified.
func (f *Feature[T]) Minus(d int) *Feature[T] {
	return f.Plus(-d)
}

// Opposite returns a copy on the other strand, leaving f unmodified.
func (f *Feature[T]) Opposite() *Feature[T] {
	c := f.Copy()
	c.SwitchStrand()
	return c
}
