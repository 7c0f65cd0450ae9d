package retsu

import "github.com/rotisserie/eris"

// View pairs a shared column with a shared index vector. Position i of the
// view is the column element at slot indices[i]; the view holds no data of
// its own and never points back at the pool it came from.
type View[T Element] struct {
	column  *Column[T]
	indices *Indices
}

// NewView returns the view of column through indices.
func NewView[T Element](column *Column[T], indices *Indices) *View[T] {
	return &View[T]{column: column, indices: indices}
}

// Column returns the shared column behind the view.
func (v *View[T]) Column() *Column[T] {
	return v.column
}

// Indices returns the shared index vector behind the view.
func (v *View[T]) Indices() *Indices {
	return v.indices
}

// Len returns the number of positions in the view.
func (v *View[T]) Len() (int, error) {
	return v.indices.Len()
}

// Get returns the element at position i.
func (v *View[T]) Get(i int) (T, error) {
	var out T
	var locks lockSet
	locks.read(v.column.handle())
	locks.read(&v.indices.h)
	err := locks.run(func() error {
		if i < 0 || i >= len(v.indices.slots) {
			return outOfRange(i, len(v.indices.slots))
		}
		slot := v.indices.slots[i]
		if int(slot) >= len(v.column.data) {
			return slotOutOfRange(slot, len(v.column.data))
		}
		out = v.column.data[slot]
		return checkObject(out, slot)
	})
	return out, err
}

// Values copies the view's elements, in view order.
func (v *View[T]) Values() ([]T, error) {
	var out []T
	var locks lockSet
	locks.read(v.column.handle())
	locks.read(&v.indices.h)
	err := locks.run(func() error {
		var err error
		out, err = gather(v.column.data, v.indices.slots)
		if err != nil {
			return err
		}
		if elemTypeOf[T]() == ObjectSlot {
			for k, e := range out {
				if err := checkObject(e, v.indices.slots[k]); err != nil {
					return err
				}
			}
		}
		return nil
	})
	return out, err
}

// Slice returns a view on the same column whose index vector is
// v.Indices().Select(key).
func (v *View[T]) Slice(key Key) (*View[T], error) {
	indices, err := v.indices.Select(key)
	if err != nil {
		return nil, err
	}
	return &View[T]{column: v.column, indices: indices}, nil
}

// Fill writes rhs into every position of the view.
func (v *View[T]) Fill(rhs Operand[T]) error {
	return zipInto(v, rhs, func(dst *T, src T) error {
		*dst = src
		return nil
	})
}

// Assign writes rhs into the positions of v selected by key. A key built
// with Where over a comparison of v implements mask assignment.
func (v *View[T]) Assign(key Key, rhs Operand[T]) error {
	sel, err := v.Slice(key)
	if err != nil {
		return err
	}
	return sel.Fill(rhs)
}

// AssignFrom is Assign with a right-hand side of another numeric element
// type, coerced element-wise.
func AssignFrom[T, U Numeric](v *View[T], key Key, rhs Operand[U]) error {
	sel, err := v.Slice(key)
	if err != nil {
		return err
	}
	return FillFrom(sel, rhs)
}

// FillFrom is Fill with a right-hand side of another numeric element type.
func FillFrom[T, U Numeric](v *View[T], rhs Operand[U]) error {
	conv := converter[T, U]()
	return zipInto(v, rhs, func(dst *T, src U) error {
		*dst = conv(src)
		return nil
	})
}

func checkObject[T Element](e T, slot uint32) error {
	if o, ok := any(e).(Object); ok && o.ref == nil {
		return eris.Wrapf(ErrInvalidObject, "slot %d was never written", slot)
	}
	return nil
}
