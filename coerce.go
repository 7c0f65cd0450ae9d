package retsu

import (
	"math"

	"github.com/rotisserie/eris"
)

// numericTable holds the operations whose semantics differ between integer
// and floating point element types. There is one table per element type; the
// generic kernels look it up instead of spelling out every type pairing.
type numericTable[T Numeric] struct {
	float     bool
	div       func(a, b T) (T, error)
	floorDiv  func(a, b T) (T, error)
	mod       func(a, b T) (T, error)
	powInt    func(a T, e uint32) T
	fromFloat func(f float64) T
}

var numericTables = [...]any{
	Int8:    intTable[int8](math.MinInt8, math.MaxInt8),
	Int16:   intTable[int16](math.MinInt16, math.MaxInt16),
	Int32:   intTable[int32](math.MinInt32, math.MaxInt32),
	Int64:   intTable[int64](math.MinInt64, math.MaxInt64),
	Uint8:   intTable[uint8](0, math.MaxUint8),
	Uint16:  intTable[uint16](0, math.MaxUint16),
	Uint32:  intTable[uint32](0, math.MaxUint32),
	Uint64:  intTable[uint64](0, math.MaxUint64),
	Float32: floatTable[float32](),
	Float64: floatTable[float64](),
}

func tableOf[T Numeric]() *numericTable[T] {
	return numericTables[elemTypeOf[T]()].(*numericTable[T])
}

func divByZero() error {
	return eris.Wrap(ErrDomainError, "integer division by zero")
}

func intTable[T Integer](lo, hi T) *numericTable[T] {
	return &numericTable[T]{
		div: func(a, b T) (T, error) {
			if b == 0 {
				return 0, divByZero()
			}
			return a / b, nil
		},
		floorDiv: func(a, b T) (T, error) {
			if b == 0 {
				return 0, divByZero()
			}
			q, r := a/b, a%b
			if r < 0 {
				if b > 0 {
					q--
				} else {
					q++
				}
			}
			return q, nil
		},
		mod: func(a, b T) (T, error) {
			if b == 0 {
				return 0, divByZero()
			}
			r := a % b
			if r < 0 {
				if b > 0 {
					r += b
				} else {
					r -= b
				}
			}
			return r, nil
		},
		powInt: func(base T, e uint32) T {
			result := T(1)
			for e > 0 {
				if e&1 == 1 {
					result *= base
				}
				base *= base
				e >>= 1
			}
			return result
		},
		fromFloat: func(f float64) T {
			switch {
			case math.IsNaN(f):
				return 0
			case f <= float64(lo):
				return lo
			case f >= float64(hi):
				return hi
			}
			return T(f)
		},
	}
}

func floatTable[T Float]() *numericTable[T] {
	return &numericTable[T]{
		float: true,
		div: func(a, b T) (T, error) {
			return a / b, nil
		},
		floorDiv: func(a, b T) (T, error) {
			x, y := float64(a), float64(b)
			q := math.Trunc(x / y)
			if math.Mod(x, y) < 0 {
				if y > 0 {
					q--
				} else {
					q++
				}
			}
			return T(q), nil
		},
		mod: func(a, b T) (T, error) {
			x, y := float64(a), float64(b)
			r := math.Mod(x, y)
			if r < 0 {
				r += math.Abs(y)
			}
			return T(r), nil
		},
		fromFloat: func(f float64) T {
			return T(f)
		},
	}
}

// converter returns the element-wise coercion from U to T: integers wrap,
// floats follow IEEE rounding, and floats narrowed to integers truncate
// toward zero and saturate (NaN becomes 0).
func converter[T, U Numeric]() func(U) T {
	if elemTypeOf[U]().IsFloat() && elemTypeOf[T]().IsInteger() {
		fromFloat := tableOf[T]().fromFloat
		return func(u U) T {
			return fromFloat(float64(u))
		}
	}
	return func(u U) T {
		return T(u)
	}
}

// Coerce converts v to T with the same rules the operators apply to a
// right-hand side of a different element type.
func Coerce[T, U Numeric](v U) T {
	return converter[T, U]()(v)
}

// exponent narrows an integer power's exponent to uint32.
func exponent[U Numeric](toU32 func(U) uint32, e U) (uint32, error) {
	if e < 0 {
		return 0, eris.Wrapf(ErrDomainError, "negative exponent %v", e)
	}
	return toU32(e), nil
}
