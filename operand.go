package retsu

type operandKind uint8

const (
	scalarOperand operandKind = iota
	bufferOperand
	viewOperand
)

// Operand is the right-hand side of an assignment, arithmetic or comparison:
// a broadcast scalar, a foreign buffer, or another view.
type Operand[T Element] interface {
	operand() operand[T]
}

type operand[T Element] struct {
	kind   operandKind
	scalar T
	buf    []T
	view   *View[T]
}

type scalar[T Element] struct {
	v T
}

func (s scalar[T]) operand() operand[T] {
	return operand[T]{kind: scalarOperand, scalar: s.v}
}

// Scalar broadcasts v to every position of the left-hand side.
func Scalar[T Element](v T) Operand[T] {
	return scalar[T]{v: v}
}

// Buffer is a foreign buffer zipped position-by-position with the left-hand
// side. Its length must match.
type Buffer[T Element] []T

func (b Buffer[T]) operand() operand[T] {
	return operand[T]{kind: bufferOperand, buf: b}
}

func (v *View[T]) operand() operand[T] {
	return operand[T]{kind: viewOperand, view: v}
}
