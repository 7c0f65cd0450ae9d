package retsu

import "github.com/rotisserie/eris"

// slotOutOfRange reports a slot an index vector holds but the column lacks.
func slotOutOfRange(slot uint32, capacity int) error {
	return eris.Wrapf(ErrOutOfRange, "slot %d, capacity %d", slot, capacity)
}

// zipInto walks the left-hand index vector left to right and calls step once
// per position with the element slot and the matching right-hand value.
//
// Three kernel shapes share this walk: scalar broadcast, view over a foreign
// buffer, and view over view. When the right-hand view lives in the same
// column as the left-hand side the column is locked once, exclusively, and
// the right-hand values are gathered before the first write, so every
// position reads the value the column held when the operation started.
func zipInto[T, U Element](lhs *View[T], rhs Operand[U], step func(dst *T, src U) error) error {
	r := rhs.operand()
	var locks lockSet
	locks.write(lhs.column.handle())
	locks.read(&lhs.indices.h)
	aliased := false
	if r.kind == viewOperand {
		locks.read(&r.view.indices.h)
		locks.read(r.view.column.handle())
		aliased = r.view.column.handle() == lhs.column.handle()
	}
	return locks.run(func() error {
		data := lhs.column.data
		dst := lhs.indices.slots
		apply := func(slot uint32, src U) error {
			if int(slot) >= len(data) {
				return slotOutOfRange(slot, len(data))
			}
			return step(&data[slot], src)
		}
		switch r.kind {
		case scalarOperand:
			for _, slot := range dst {
				if err := apply(slot, r.scalar); err != nil {
					return err
				}
			}
		case bufferOperand:
			if len(r.buf) != len(dst) {
				return shapeMismatch(len(dst), len(r.buf))
			}
			for k, slot := range dst {
				if err := apply(slot, r.buf[k]); err != nil {
					return err
				}
			}
		case viewOperand:
			src := r.view.indices.slots
			if len(src) != len(dst) {
				return shapeMismatch(len(dst), len(src))
			}
			srcData := r.view.column.data
			if aliased {
				gathered, err := gather(srcData, src)
				if err != nil {
					return err
				}
				for k, slot := range dst {
					if err := apply(slot, gathered[k]); err != nil {
						return err
					}
				}
				return nil
			}
			for k, slot := range dst {
				if int(src[k]) >= len(srcData) {
					return slotOutOfRange(src[k], len(srcData))
				}
				if err := apply(slot, srcData[src[k]]); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// zipRead is the read-only walk used by comparisons: both sides are taken
// under shared locks and visit is called once per position.
func zipRead[T, U Element](lhs *View[T], rhs Operand[U], visit func(pos int, slot uint32, a T, b U)) error {
	r := rhs.operand()
	var locks lockSet
	locks.read(lhs.column.handle())
	locks.read(&lhs.indices.h)
	if r.kind == viewOperand {
		locks.read(&r.view.indices.h)
		locks.read(r.view.column.handle())
	}
	return locks.run(func() error {
		data := lhs.column.data
		dst := lhs.indices.slots
		var src []uint32
		switch r.kind {
		case bufferOperand:
			if len(r.buf) != len(dst) {
				return shapeMismatch(len(dst), len(r.buf))
			}
		case viewOperand:
			src = r.view.indices.slots
			if len(src) != len(dst) {
				return shapeMismatch(len(dst), len(src))
			}
		}
		for k, slot := range dst {
			if int(slot) >= len(data) {
				return slotOutOfRange(slot, len(data))
			}
			var b U
			switch r.kind {
			case scalarOperand:
				b = r.scalar
			case bufferOperand:
				b = r.buf[k]
			case viewOperand:
				srcData := r.view.column.data
				if int(src[k]) >= len(srcData) {
					return slotOutOfRange(src[k], len(srcData))
				}
				b = srcData[src[k]]
			}
			visit(k, slot, data[slot], b)
		}
		return nil
	})
}

// gather copies data at each slot, in order.
func gather[T any](data []T, slots []uint32) ([]T, error) {
	out := make([]T, len(slots))
	for k, s := range slots {
		if int(s) >= len(data) {
			return nil, slotOutOfRange(s, len(data))
		}
		out[k] = data[s]
	}
	return out, nil
}
