package retsu

import "github.com/rotisserie/eris"

// Column is a shared, lock-protected contiguous buffer of a single element
// type. Its length is fixed at creation; pools size it to their capacity and
// never reallocate it. Every view over the column shares the same lock.
type Column[T Element] struct {
	h    rwHandle
	data []T
}

// NewColumn returns a zeroed column of the given capacity.
func NewColumn[T Element](capacity int) *Column[T] {
	return &Column[T]{data: make([]T, max(capacity, 0))}
}

// FromBuffer returns a column holding a copy of buf.
func FromBuffer[T Element](buf []T) *Column[T] {
	return &Column[T]{data: append(make([]T, 0, len(buf)), buf...)}
}

// FromValue returns a column of n copies of v.
func FromValue[T Element](v T, n int) *Column[T] {
	c := NewColumn[T](n)
	for i := range c.data {
		c.data[i] = v
	}
	return c
}

// Cap returns the number of slots in the column.
func (c *Column[T]) Cap() int {
	return len(c.data)
}

// ElemType returns the element type tag of the column.
func (c *Column[T]) ElemType() ElemType {
	return elemTypeOf[T]()
}

// Same reports whether c and other are the same shared allocation.
func (c *Column[T]) Same(other *Column[T]) bool {
	return c == other
}

// Read returns the element stored at slot. An Object slot holding no
// reference fails with ErrInvalidObject.
func (c *Column[T]) Read(slot int) (T, error) {
	var v T
	err := c.h.read(func() error {
		if slot < 0 || slot >= len(c.data) {
			return eris.Wrapf(ErrOutOfRange, "slot %d, capacity %d", slot, len(c.data))
		}
		v = c.data[slot]
		return checkObject(v, uint32(slot))
	})
	return v, err
}

// Write replaces the element stored at slot.
func (c *Column[T]) Write(slot int, v T) error {
	return c.h.write(func() error {
		if slot < 0 || slot >= len(c.data) {
			return eris.Wrapf(ErrOutOfRange, "slot %d, capacity %d", slot, len(c.data))
		}
		c.data[slot] = v
		return nil
	})
}

// ToBuffer returns a copy of every slot of the column.
func (c *Column[T]) ToBuffer() ([]T, error) {
	var out []T
	err := c.h.read(func() error {
		out = append(make([]T, 0, len(c.data)), c.data...)
		return nil
	})
	return out, err
}

// View returns a view over every slot of the column.
func (c *Column[T]) View() *View[T] {
	return &View[T]{column: c, indices: seqIndices(0, len(c.data), len(c.data))}
}

// ViewOf returns a view over the slots selected by indices.
func (c *Column[T]) ViewOf(indices *Indices) *View[T] {
	return &View[T]{column: c, indices: indices}
}

func (c *Column[T]) handle() *rwHandle {
	return &c.h
}

// move copies slot src over slot dst and zeroes src (dst == src just zeroes
// it). Pools use it to swap-remove a despawned entity.
func (c *Column[T]) move(dst, src uint32) error {
	return c.h.write(func() error {
		if int(dst) >= len(c.data) || int(src) >= len(c.data) {
			return eris.Wrapf(ErrOutOfRange, "move %d -> %d, capacity %d", src, dst, len(c.data))
		}
		var zero T
		c.data[dst] = c.data[src]
		c.data[src] = zero
		return nil
	})
}

// storage is the type-erased face of a column that pools depend on.
type storage interface {
	Cap() int
	ElemType() ElemType
	move(dst, src uint32) error
	handle() *rwHandle
}

var _ storage = (*Column[float32])(nil)
