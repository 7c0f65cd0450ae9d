package retsu

import (
	"sync"

	"github.com/google/btree"
	"github.com/rotisserie/eris"
)

// pool is the storage for one component: a fixed-capacity column, the master
// index vector over its live prefix [0, n), and the entity bookkeeping that
// keeps the prefix dense.
type pool struct {
	mu       sync.RWMutex
	id       ComponentID
	column   storage
	indices  *Indices
	slots    map[EntityID]SlotIndex
	live     *btree.BTreeG[EntityID]
	entities []EntityID // slot -> entity
	version  uint64     // bumped on every membership change
}

func newPool(id ComponentID, column storage) *pool {
	capacity := column.Cap()
	return &pool{
		id:       id,
		column:   column,
		indices:  seqIndices(0, 0, capacity),
		slots:    make(map[EntityID]SlotIndex, capacity),
		live:     btree.NewOrderedG[EntityID](32),
		entities: make([]EntityID, 0, capacity),
	}
}

// room fails with ErrCapacityExceeded unless k more entities fit.
func (p *pool) room(k int) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.roomLocked(k)
}

func (p *pool) roomLocked(k int) error {
	if n := len(p.entities); n+k > p.column.Cap() {
		return eris.Wrapf(ErrCapacityExceeded, "component %d: %d live + %d new > capacity %d", p.id, n, k, p.column.Cap())
	}
	return nil
}

// spawn appends ids at slots [n, n+k) and returns a fresh vector of those
// slots. Nothing changes when the pool is too small or an id is already live.
func (p *pool) spawn(ids []EntityID) (*Indices, error) {
	if len(ids) == 0 {
		return NewIndices(), nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.roomLocked(len(ids)); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := p.slots[id]; ok {
			return nil, eris.Wrapf(ErrDuplicateEntity, "component %d: entity %d", p.id, id)
		}
	}
	n := len(p.entities)
	if err := p.indices.extend(uint32(n), len(ids)); err != nil {
		return nil, err
	}
	for i, id := range ids {
		p.slots[id] = SlotIndex(n + i)
		p.live.ReplaceOrInsert(id)
		p.entities = append(p.entities, id)
	}
	p.version++
	return seqIndices(uint32(n), len(ids), len(ids)), nil
}

// despawn swap-removes id: the entity at the last live slot takes its place
// and the last slot is zeroed. Index vectors held by callers are not
// rewritten, so a stale selection may now point at a different entity.
func (p *pool) despawn(id EntityID) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s, ok := p.slots[id]
	if !ok {
		return false, nil
	}
	last := SlotIndex(len(p.entities) - 1)
	if err := p.column.move(s, last); err != nil {
		return false, err
	}
	if s != last {
		moved := p.entities[last]
		p.entities[s] = moved
		p.slots[moved] = s
	}
	p.entities = p.entities[:last]
	delete(p.slots, id)
	p.live.Delete(id)
	p.version++
	if err := p.indices.truncate(); err != nil {
		return true, err
	}
	return true, nil
}

func (p *pool) has(id EntityID) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.slots[id]
	return ok
}

func (p *pool) slot(id EntityID) (SlotIndex, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	s, ok := p.slots[id]
	return s, ok
}

func (p *pool) size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entities)
}
