package retsu

import "github.com/rotisserie/eris"

// CompareBool compares a bool view against rhs. Only CmpEq and CmpNe are
// defined for bools; any other comparison fails with ErrDomainError.
func CompareBool(c Cmp, lhs *View[bool], rhs Operand[bool]) (*Indices, error) {
	var want bool
	switch c {
	case CmpEq:
		want = true
	case CmpNe:
		want = false
	default:
		return nil, eris.Wrapf(ErrDomainError, "%s is not defined for bool", c)
	}
	var slots []uint32
	err := zipRead(lhs, rhs, func(_ int, slot uint32, a, b bool) {
		if (a == b) == want {
			slots = append(slots, slot)
		}
	})
	if err != nil {
		return nil, err
	}
	return newIndicesOwned(slots), nil
}

// And sets lhs[k] = lhs[k] && rhs[k] in place.
func And(lhs *View[bool], rhs Operand[bool]) error {
	return zipInto(lhs, rhs, func(dst *bool, src bool) error {
		*dst = *dst && src
		return nil
	})
}

// Or sets lhs[k] = lhs[k] || rhs[k] in place.
func Or(lhs *View[bool], rhs Operand[bool]) error {
	return zipInto(lhs, rhs, func(dst *bool, src bool) error {
		*dst = *dst || src
		return nil
	})
}

// Xor sets lhs[k] = lhs[k] != rhs[k] in place.
func Xor(lhs *View[bool], rhs Operand[bool]) error {
	return zipInto(lhs, rhs, func(dst *bool, src bool) error {
		*dst = *dst != src
		return nil
	})
}

// Not negates every element of v in place.
func Not(v *View[bool]) error {
	return Xor(v, Scalar(true))
}
