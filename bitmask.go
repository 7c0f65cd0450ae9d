package retsu

// slotSet is a dense bitset over slot indices. Where keys build one from a
// comparison result so membership checks stay O(1) per position.
type slotSet []uint64

func newSlotSet(slots []uint32) slotSet {
	var maxSlot uint32
	for _, s := range slots {
		maxSlot = max(maxSlot, s)
	}
	set := make(slotSet, maxSlot>>6+1)
	for _, s := range slots {
		set.set(s)
	}
	return set
}

// set enables the bit for slot s. s must be covered by the set.
func (m slotSet) set(s uint32) {
	i := s >> 6 // (s / 64) to find the uint64 index
	o := s & 63 // (s % 64) to find the bit offset
	m[i] |= uint64(1) << o
}

// has reports whether slot s is in the set.
func (m slotSet) has(s uint32) bool {
	i := s >> 6
	if int(i) >= len(m) {
		return false
	}
	o := s & 63
	return m[i]&(uint64(1)<<o) != 0
}
