package retsu

// SlotIndex is the position of an entity's data inside a component column.
type SlotIndex = uint32

// Indices is a shared, lock-protected ordered sequence of slot indices. It is
// the selection half of a View: every view holding the same *Indices sees its
// mutations, which is how spawning into a pool immediately widens every
// full-pool view.
type Indices struct {
	h     rwHandle
	slots []uint32
}

// NewIndices returns a vector holding a copy of slots.
func NewIndices(slots ...uint32) *Indices {
	return &Indices{slots: append([]uint32(nil), slots...)}
}

// newIndicesOwned wraps slots without copying; the caller gives up ownership.
func newIndicesOwned(slots []uint32) *Indices {
	if slots == nil {
		slots = []uint32{}
	}
	return &Indices{slots: slots}
}

// seqIndices returns the vector [first, first+n) with room for capacity elements.
func seqIndices(first uint32, n, capacity int) *Indices {
	slots := make([]uint32, n, max(n, capacity))
	for i := range slots {
		slots[i] = first + uint32(i)
	}
	return &Indices{slots: slots}
}

// Len returns the number of elements.
func (x *Indices) Len() (int, error) {
	var n int
	err := x.h.read(func() error {
		n = len(x.slots)
		return nil
	})
	return n, err
}

// At returns the slot at position i.
func (x *Indices) At(i int) (uint32, error) {
	var s uint32
	err := x.h.read(func() error {
		if i < 0 || i >= len(x.slots) {
			return outOfRange(i, len(x.slots))
		}
		s = x.slots[i]
		return nil
	})
	return s, err
}

// Slots returns a copy of the vector's elements.
func (x *Indices) Slots() ([]uint32, error) {
	var out []uint32
	err := x.h.read(func() error {
		out = append(make([]uint32, 0, len(x.slots)), x.slots...)
		return nil
	})
	return out, err
}

// Select returns a freshly owned vector holding the elements of x chosen by key.
func (x *Indices) Select(key Key) (*Indices, error) {
	key, err := key.prepare()
	if err != nil {
		return nil, err
	}
	var out []uint32
	err = x.h.read(func() error {
		out, err = key.selectFrom(x.slots)
		return err
	})
	if err != nil {
		return nil, err
	}
	return newIndicesOwned(out), nil
}

// extend appends [first, first+n) under the exclusive lock.
func (x *Indices) extend(first uint32, n int) error {
	return x.h.write(func() error {
		x.slots = extendSlice(x.slots, n)
		tail := x.slots[len(x.slots)-n:]
		for i := range tail {
			tail[i] = first + uint32(i)
		}
		return nil
	})
}

// truncate drops the last element under the exclusive lock.
func (x *Indices) truncate() error {
	return x.h.write(func() error {
		if len(x.slots) > 0 {
			x.slots = x.slots[:len(x.slots)-1]
		}
		return nil
	})
}
