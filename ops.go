package retsu

import (
	"cmp"
	"fmt"
	"math"

	"github.com/rotisserie/eris"
)

// Op is an element-wise arithmetic operation.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpFloorDiv:
		return "floordiv"
	case OpMod:
		return "mod"
	case OpPow:
		return "pow"
	}
	return fmt.Sprintf("Op(%d)", uint8(op))
}

// Cmp is an element-wise comparison.
type Cmp uint8

const (
	CmpLt Cmp = iota
	CmpLe
	CmpGt
	CmpGe
	CmpEq
	CmpNe
)

func (c Cmp) String() string {
	switch c {
	case CmpLt:
		return "lt"
	case CmpLe:
		return "le"
	case CmpGt:
		return "gt"
	case CmpGe:
		return "ge"
	case CmpEq:
		return "eq"
	case CmpNe:
		return "ne"
	}
	return fmt.Sprintf("Cmp(%d)", uint8(c))
}

// arithStep builds the per-element function of op for a left-hand side of T
// and a right-hand side of U.
func arithStep[T, U Numeric](op Op) (func(dst *T, src U) error, error) {
	conv := converter[T, U]()
	table := tableOf[T]()
	switch op {
	case OpAdd:
		return func(dst *T, src U) error { *dst += conv(src); return nil }, nil
	case OpSub:
		return func(dst *T, src U) error { *dst -= conv(src); return nil }, nil
	case OpMul:
		return func(dst *T, src U) error { *dst *= conv(src); return nil }, nil
	case OpDiv, OpFloorDiv, OpMod:
		f := table.div
		if op == OpFloorDiv {
			f = table.floorDiv
		} else if op == OpMod {
			f = table.mod
		}
		return func(dst *T, src U) error {
			v, err := f(*dst, conv(src))
			if err != nil {
				return err
			}
			*dst = v
			return nil
		}, nil
	case OpPow:
		if table.float {
			return func(dst *T, src U) error {
				*dst = T(math.Pow(float64(*dst), float64(src)))
				return nil
			}, nil
		}
		toU32 := converter[uint32, U]()
		return func(dst *T, src U) error {
			e, err := exponent(toU32, src)
			if err != nil {
				return err
			}
			*dst = table.powInt(*dst, e)
			return nil
		}, nil
	}
	return nil, eris.Wrapf(ErrDomainError, "unknown op %d", uint8(op))
}

// Apply updates lhs in place: lhs[k] = lhs[k] op rhs[k] for every position k.
// Positions are visited left to right; an error stops the walk and leaves
// earlier positions updated.
//
// Parameters:
//   - op: The arithmetic operator. An unknown op fails with ErrDomainError
//     before anything is written.
//   - lhs: The view written in place.
//   - rhs: A Scalar, a Buffer or a view, coerced to the element type of lhs.
//     Buffers and views must have the length of lhs.
//
// Returns:
//   - ErrShapeMismatch on a length mismatch, ErrDomainError on an integer
//     division by zero or a negative integer exponent.
func Apply[T, U Numeric](op Op, lhs *View[T], rhs Operand[U]) error {
	step, err := arithStep[T, U](op)
	if err != nil {
		return err
	}
	return zipInto(lhs, rhs, step)
}

// Compute returns lhs op rhs as a view over a freshly allocated column,
// leaving lhs untouched.
func Compute[T, U Numeric](op Op, lhs *View[T], rhs Operand[U]) (*View[T], error) {
	values, err := lhs.Values()
	if err != nil {
		return nil, err
	}
	out := FromBuffer(values).View()
	if err := Apply(op, out, rhs); err != nil {
		return nil, err
	}
	return out, nil
}

func predicate[T Numeric](c Cmp) (func(a, b T) bool, error) {
	switch c {
	case CmpLt:
		return func(a, b T) bool { return a < b }, nil
	case CmpLe:
		return func(a, b T) bool { return a <= b }, nil
	case CmpGt:
		return func(a, b T) bool { return a > b }, nil
	case CmpGe:
		return func(a, b T) bool { return a >= b }, nil
	case CmpEq:
		return func(a, b T) bool { return a == b }, nil
	case CmpNe:
		return func(a, b T) bool { return a != b }, nil
	}
	return nil, eris.Wrapf(ErrDomainError, "unknown comparison %d", uint8(c))
}

// comparator orders lhs and rhs without coercing rhs to the lhs type. Mixed
// operands holding a float compare in float64; integer pairs compare exactly,
// signed against unsigned included.
func comparator[T, U Numeric](c Cmp) (func(a T, b U) bool, error) {
	if elemTypeOf[T]().IsFloat() || elemTypeOf[U]().IsFloat() {
		pred, err := predicate[float64](c)
		if err != nil {
			return nil, err
		}
		return func(a T, b U) bool { return pred(float64(a), float64(b)) }, nil
	}
	pred, err := predicate[int64](c)
	if err != nil {
		return nil, err
	}
	return func(a T, b U) bool {
		aNeg, bNeg := a < 0, b < 0
		var order int
		switch {
		case aNeg && !bNeg:
			order = -1
		case bNeg && !aNeg:
			order = 1
		case aNeg:
			order = cmp.Compare(int64(a), int64(b))
		default:
			order = cmp.Compare(uint64(a), uint64(b))
		}
		return pred(int64(order), 0)
	}, nil
}

// Compare returns a fresh index vector holding the slots of lhs where
// lhs[k] cmp rhs[k] holds, in view order. Pass it to Where to filter or
// mask-assign. Unlike Apply, rhs is not converted to the lhs type first:
// 1 < 1.5 holds for an integer lhs.
func Compare[T, U Numeric](c Cmp, lhs *View[T], rhs Operand[U]) (*Indices, error) {
	test, err := comparator[T, U](c)
	if err != nil {
		return nil, err
	}
	var slots []uint32
	err = zipRead(lhs, rhs, func(_ int, slot uint32, a T, b U) {
		if test(a, b) {
			slots = append(slots, slot)
		}
	})
	if err != nil {
		return nil, err
	}
	return newIndicesOwned(slots), nil
}

// CompareMask is Compare returning one flag per position of lhs instead of
// the matching slots. The mask selects aligned positions of any other view
// of the same query result.
func CompareMask[T, U Numeric](c Cmp, lhs *View[T], rhs Operand[U]) (Mask, error) {
	test, err := comparator[T, U](c)
	if err != nil {
		return nil, err
	}
	var mask Mask
	err = zipRead(lhs, rhs, func(_ int, _ uint32, a T, b U) {
		mask = append(mask, test(a, b))
	})
	if err != nil {
		return nil, err
	}
	return mask, nil
}

func IAdd[T, U Numeric](lhs *View[T], rhs Operand[U]) error { return Apply(OpAdd, lhs, rhs) }
func ISub[T, U Numeric](lhs *View[T], rhs Operand[U]) error { return Apply(OpSub, lhs, rhs) }
func IMul[T, U Numeric](lhs *View[T], rhs Operand[U]) error { return Apply(OpMul, lhs, rhs) }
func IDiv[T, U Numeric](lhs *View[T], rhs Operand[U]) error { return Apply(OpDiv, lhs, rhs) }
func IFloorDiv[T, U Numeric](lhs *View[T], rhs Operand[U]) error {
	return Apply(OpFloorDiv, lhs, rhs)
}
func IMod[T, U Numeric](lhs *View[T], rhs Operand[U]) error { return Apply(OpMod, lhs, rhs) }
func IPow[T, U Numeric](lhs *View[T], rhs Operand[U]) error { return Apply(OpPow, lhs, rhs) }

func Add[T, U Numeric](lhs *View[T], rhs Operand[U]) (*View[T], error) {
	return Compute(OpAdd, lhs, rhs)
}
func Sub[T, U Numeric](lhs *View[T], rhs Operand[U]) (*View[T], error) {
	return Compute(OpSub, lhs, rhs)
}
func Mul[T, U Numeric](lhs *View[T], rhs Operand[U]) (*View[T], error) {
	return Compute(OpMul, lhs, rhs)
}
func Div[T, U Numeric](lhs *View[T], rhs Operand[U]) (*View[T], error) {
	return Compute(OpDiv, lhs, rhs)
}
func FloorDiv[T, U Numeric](lhs *View[T], rhs Operand[U]) (*View[T], error) {
	return Compute(OpFloorDiv, lhs, rhs)
}
func Mod[T, U Numeric](lhs *View[T], rhs Operand[U]) (*View[T], error) {
	return Compute(OpMod, lhs, rhs)
}
func Pow[T, U Numeric](lhs *View[T], rhs Operand[U]) (*View[T], error) {
	return Compute(OpPow, lhs, rhs)
}

func Lt[T, U Numeric](lhs *View[T], rhs Operand[U]) (*Indices, error) {
	return Compare(CmpLt, lhs, rhs)
}
func Le[T, U Numeric](lhs *View[T], rhs Operand[U]) (*Indices, error) {
	return Compare(CmpLe, lhs, rhs)
}
func Gt[T, U Numeric](lhs *View[T], rhs Operand[U]) (*Indices, error) {
	return Compare(CmpGt, lhs, rhs)
}
func Ge[T, U Numeric](lhs *View[T], rhs Operand[U]) (*Indices, error) {
	return Compare(CmpGe, lhs, rhs)
}
func Eq[T, U Numeric](lhs *View[T], rhs Operand[U]) (*Indices, error) {
	return Compare(CmpEq, lhs, rhs)
}
func Ne[T, U Numeric](lhs *View[T], rhs Operand[U]) (*Indices, error) {
	return Compare(CmpNe, lhs, rhs)
}
