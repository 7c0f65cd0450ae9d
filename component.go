package retsu

import (
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// ComponentID identifies a component kind. Callers assign them at
// registration; the value itself carries no meaning to the store.
type ComponentID uint32

// EntityIDComponent is the reserved id of the u32 pool every live entity is
// a member of. Slot s of its column holds the EntityID whose data lives at
// slot s of that pool.
const EntityIDComponent = ^ComponentID(0)

// RegisterComponent creates the pool for component id with element type T
// and the given capacity, and returns its master index vector. Registering
// an existing id with the same element type returns the existing master
// vector; a different element type fails with ErrTypeMismatch.
func RegisterComponent[T Element](w *World, id ComponentID, capacity int) (*Indices, error) {
	return w.register(id, elemTypeOf[T](), capacity, func() storage {
		return NewColumn[T](capacity)
	})
}

// RegisterComponentOf is RegisterComponent for hosts that pick the element
// type at run time.
func (w *World) RegisterComponentOf(id ComponentID, elem ElemType, capacity int) (*Indices, error) {
	return w.register(id, elem, capacity, func() storage {
		return newStorage(elem, capacity)
	})
}

func (w *World) register(id ComponentID, elem ElemType, capacity int, mk func() storage) (*Indices, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.pools[id]; ok {
		if p.column.ElemType() != elem {
			return nil, eris.Wrapf(ErrTypeMismatch, "component %d holds %s, not %s", id, p.column.ElemType(), elem)
		}
		return p.indices, nil
	}
	if capacity <= 0 {
		return nil, eris.Wrapf(ErrCapacityExceeded, "component %d: capacity %d", id, capacity)
	}
	if elem > ObjectSlot {
		return nil, eris.Wrapf(ErrTypeMismatch, "component %d: unknown element type %d", id, uint8(elem))
	}
	p := newPool(id, mk())
	w.pools[id] = p
	w.log.WithFields(logrus.Fields{
		"component_id": id,
		"elem":         elem.String(),
		"capacity":     capacity,
	}).Debug("component registered")
	return p.indices, nil
}

// newStorage allocates a column for a run-time element type.
func newStorage(elem ElemType, capacity int) storage {
	switch elem {
	case Bool:
		return NewColumn[bool](capacity)
	case Int8:
		return NewColumn[int8](capacity)
	case Int16:
		return NewColumn[int16](capacity)
	case Int32:
		return NewColumn[int32](capacity)
	case Int64:
		return NewColumn[int64](capacity)
	case Uint8:
		return NewColumn[uint8](capacity)
	case Uint16:
		return NewColumn[uint16](capacity)
	case Uint32:
		return NewColumn[uint32](capacity)
	case Uint64:
		return NewColumn[uint64](capacity)
	case Float32:
		return NewColumn[float32](capacity)
	case Float64:
		return NewColumn[float64](capacity)
	case ObjectSlot:
		return NewColumn[Object](capacity)
	}
	panic("retsu: unknown element type")
}
