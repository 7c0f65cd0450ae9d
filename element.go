package retsu

import "fmt"

// ElemType identifies the element type of a column. The set is closed.
type ElemType uint8

const (
	Bool ElemType = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	ObjectSlot
)

var elemTypeNames = [...]string{
	Bool:       "bool",
	Int8:       "i8",
	Int16:      "i16",
	Int32:      "i32",
	Int64:      "i64",
	Uint8:      "u8",
	Uint16:     "u16",
	Uint32:     "u32",
	Uint64:     "u64",
	Float32:    "f32",
	Float64:    "f64",
	ObjectSlot: "object",
}

func (t ElemType) String() string {
	if int(t) < len(elemTypeNames) {
		return elemTypeNames[t]
	}
	return fmt.Sprintf("ElemType(%d)", uint8(t))
}

// IsInteger reports whether t is one of the signed or unsigned integer types.
func (t ElemType) IsInteger() bool {
	return t >= Int8 && t <= Uint64
}

// IsSigned reports whether t is a signed integer type.
func (t ElemType) IsSigned() bool {
	return t >= Int8 && t <= Int64
}

// IsFloat reports whether t is a floating point type.
func (t ElemType) IsFloat() bool {
	return t == Float32 || t == Float64
}

// Object is an opaque slot holding any Go value. The zero Object is an
// unwritten slot; reading it through a view fails with ErrInvalidObject.
type Object struct {
	ref any
}

// NewObject wraps v in an Object slot value.
func NewObject(v any) Object {
	return Object{ref: v}
}

// Value returns the wrapped value and whether the slot was ever written.
func (o Object) Value() (any, bool) {
	return o.ref, o.ref != nil
}

// Integer is the set of integer element types.
type Integer interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64
}

// Float is the set of floating point element types.
type Float interface {
	float32 | float64
}

// Numeric is the set of element types that support arithmetic.
type Numeric interface {
	Integer | Float
}

// Element is the closed set of column element types.
type Element interface {
	bool | Numeric | Object
}

// elemTypeOf returns the ElemType tag of T.
func elemTypeOf[T Element]() ElemType {
	var zero T
	switch any(zero).(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	case Object:
		return ObjectSlot
	}
	panic("retsu: unreachable element type")
}
