package retsu

import "github.com/rotisserie/eris"

// ViewOf returns a typed view of component id's column through indices. A nil
// indices selects the pool's master vector, so the view tracks every live
// entity of the pool as it changes.
func ViewOf[T Element](w *World, id ComponentID, indices *Indices) (*View[T], error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, err := w.poolLocked(id)
	if err != nil {
		return nil, err
	}
	column, ok := p.column.(*Column[T])
	if !ok {
		return nil, eris.Wrapf(ErrTypeMismatch, "component %d holds %s, not %s", id, p.column.ElemType(), elemTypeOf[T]())
	}
	if indices == nil {
		indices = p.indices
	}
	return column.ViewOf(indices), nil
}

// ColumnOf returns component id's column.
func ColumnOf[T Element](w *World, id ComponentID) (*Column[T], error) {
	v, err := ViewOf[T](w, id, nil)
	if err != nil {
		return nil, err
	}
	return v.Column(), nil
}

// QueryViews runs query id and returns the first two components' views over
// the result. It is the common shape of a two-component system.
func QueryViews[A, B Element](w *World, id QueryID) (*View[A], *View[B], error) {
	q, err := w.Query(id)
	if err != nil {
		return nil, nil, err
	}
	if len(q.components) < 2 {
		return nil, nil, eris.Wrapf(ErrShapeMismatch, "query %d has %d components", id, len(q.components))
	}
	rows, err := w.RunQuery(id)
	if err != nil {
		return nil, nil, err
	}
	a, err := ViewOf[A](w, q.components[0], rows[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := ViewOf[B](w, q.components[1], rows[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// Query1 is QueryViews for a single-component query.
func Query1[A Element](w *World, id QueryID) (*View[A], error) {
	q, err := w.Query(id)
	if err != nil {
		return nil, err
	}
	if len(q.components) < 1 {
		return nil, eris.Wrapf(ErrShapeMismatch, "query %d has no components", id)
	}
	rows, err := w.RunQuery(id)
	if err != nil {
		return nil, err
	}
	return ViewOf[A](w, q.components[0], rows[0])
}

// GetComponent reads component c of the live entity e.
func GetComponent[T Element](w *World, e EntityID, c ComponentID) (T, error) {
	var zero T
	column, s, err := entitySlot[T](w, e, c)
	if err != nil {
		return zero, err
	}
	return column.Read(int(s))
}

// SetComponent writes component c of the live entity e.
func SetComponent[T Element](w *World, e EntityID, c ComponentID, v T) error {
	column, s, err := entitySlot[T](w, e, c)
	if err != nil {
		return err
	}
	return column.Write(int(s), v)
}

func entitySlot[T Element](w *World, e EntityID, c ComponentID) (*Column[T], SlotIndex, error) {
	column, err := ColumnOf[T](w, c)
	if err != nil {
		return nil, 0, err
	}
	s, ok := w.Slot(e, c)
	if !ok {
		return nil, 0, eris.Wrapf(ErrOutOfRange, "entity %d holds no component %d", e, c)
	}
	return column, s, nil
}
