package retsu

import (
	"math"

	"github.com/rotisserie/eris"
)

// Unbounded marks an open Range bound: the start or end of the vector,
// depending on the direction of the stride.
const Unbounded = math.MinInt

// Key selects positions of an index vector. The implementations are Range,
// Positions, Mask and the filter returned by Where.
type Key interface {
	// prepare resolves anything the key borrows from other shared handles
	// before the receiver's lock is taken.
	prepare() (Key, error)
	selectFrom(src []uint32) ([]uint32, error)
}

// Range is a half-open range of positions with a stride. Negative bounds count
// from the end; out-of-range bounds are clamped. A zero Step means 1 and a
// negative Step walks backwards.
type Range struct {
	Start int
	Stop  int
	Step  int
}

// All selects every position in order.
func All() Range {
	return Range{Start: Unbounded, Stop: Unbounded, Step: 1}
}

// Reversed selects every position in reverse order.
func Reversed() Range {
	return Range{Start: Unbounded, Stop: Unbounded, Step: -1}
}

// Span selects positions [start, stop).
func Span(start, stop int) Range {
	return Range{Start: start, Stop: stop, Step: 1}
}

func (r Range) prepare() (Key, error) { return r, nil }

// bounds normalises the range against a vector of length n.
func (r Range) bounds(n int) (start, stop, step int) {
	step = r.Step
	if step == 0 {
		step = 1
	}
	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}
	clamp := func(v, def int) int {
		if v == Unbounded {
			return def
		}
		if v < 0 {
			v += n
			if v < lower {
				return lower
			}
			return v
		}
		if v > upper {
			return upper
		}
		return v
	}
	if step > 0 {
		return clamp(r.Start, lower), clamp(r.Stop, upper), step
	}
	return clamp(r.Start, upper), clamp(r.Stop, lower), step
}

// Count returns the number of positions r selects in a vector of length n.
func (r Range) Count(n int) int {
	start, stop, step := r.bounds(n)
	switch {
	case step > 0 && start < stop:
		return (stop - start + step - 1) / step
	case step < 0 && start > stop:
		return (start - stop - step - 1) / -step
	}
	return 0
}

func (r Range) positions(n int, fn func(p int)) {
	start, stop, step := r.bounds(n)
	if step > 0 {
		for p := start; p < stop; p += step {
			fn(p)
		}
		return
	}
	for p := start; p > stop; p += step {
		fn(p)
	}
}

func (r Range) selectFrom(src []uint32) ([]uint32, error) {
	out := make([]uint32, 0, r.Count(len(src)))
	r.positions(len(src), func(p int) {
		out = append(out, src[p])
	})
	return out, nil
}

// Positions selects explicit positions of the vector, in the given order.
// Any position outside the vector fails with ErrOutOfRange.
type Positions []int

func (k Positions) prepare() (Key, error) { return k, nil }

func (k Positions) selectFrom(src []uint32) ([]uint32, error) {
	out := make([]uint32, len(k))
	for i, p := range k {
		if p < 0 || p >= len(src) {
			return nil, outOfRange(p, len(src))
		}
		out[i] = src[p]
	}
	return out, nil
}

// Mask keeps the positions whose flag is true. A mask shorter or longer than
// the vector is zipped against it.
type Mask []bool

func (k Mask) prepare() (Key, error) { return k, nil }

func (k Mask) selectFrom(src []uint32) ([]uint32, error) {
	out := make([]uint32, 0, min(len(k), len(src)))
	for i, keep := range k {
		if i >= len(src) {
			break
		}
		if keep {
			out = append(out, src[i])
		}
	}
	return out, nil
}

// Where keeps the positions whose slot appears in slots, preserving the
// vector's order. Feed it the result of a comparison to filter or
// mask-assign the compared view.
func Where(slots *Indices) Key {
	return whereKey{from: slots}
}

type whereKey struct {
	from *Indices
	set  slotSet
}

func (k whereKey) prepare() (Key, error) {
	if k.from == nil {
		return nil, eris.Wrap(ErrShapeMismatch, "where: nil slot vector")
	}
	slots, err := k.from.Slots()
	if err != nil {
		return nil, err
	}
	return whereKey{set: newSlotSet(slots)}, nil
}

func (k whereKey) selectFrom(src []uint32) ([]uint32, error) {
	out := make([]uint32, 0, len(src))
	for _, s := range src {
		if k.set.has(s) {
			out = append(out, s)
		}
	}
	return out, nil
}
