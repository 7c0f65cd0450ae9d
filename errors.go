package retsu

import "github.com/rotisserie/eris"

// Error kinds returned across the package boundary. Every error produced by
// retsu wraps exactly one of these, so callers can branch with errors.Is.
var (
	// ErrOutOfRange reports a position beyond an index vector or a slot
	// beyond a column's capacity.
	ErrOutOfRange = eris.New("out of range")
	// ErrShapeMismatch reports zipped operands of differing length.
	ErrShapeMismatch = eris.New("shape mismatch")
	// ErrCapacityExceeded reports a spawn that would overflow a pool.
	ErrCapacityExceeded = eris.New("capacity exceeded")
	// ErrUnknownComponent reports a component id with no registered pool.
	ErrUnknownComponent = eris.New("unknown component")
	// ErrDomainError reports integer division by zero or a negative integer exponent.
	ErrDomainError = eris.New("domain error")
	// ErrStateCorrupted reports a lock poisoned by a panic on another goroutine.
	ErrStateCorrupted = eris.New("state corrupted")
	// ErrInvalidObject reports a read of an object slot that was never written.
	ErrInvalidObject = eris.New("invalid object")
	// ErrTypeMismatch reports a component accessed with the wrong element type.
	ErrTypeMismatch = eris.New("type mismatch")
	// ErrDuplicateEntity reports a spawn of an entity already live in a pool.
	ErrDuplicateEntity = eris.New("duplicate entity")
	// ErrDuplicateResource reports a resource type the store already holds.
	ErrDuplicateResource = eris.New("duplicate resource")
)

func outOfRange(i, n int) error {
	return eris.Wrapf(ErrOutOfRange, "index %d, length %d", i, n)
}

func shapeMismatch(lhs, rhs int) error {
	return eris.Wrapf(ErrShapeMismatch, "lhs has %d elements, rhs has %d", lhs, rhs)
}
