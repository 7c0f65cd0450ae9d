package retsu

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

const (
	defaultNumEntities   = 65536
	defaultNumComponents = 16
	defaultNumQueries    = 8
)

// Config carries the capacity hints of a World.
type Config struct {
	// NumEntities is the capacity of the entity-id pool, which bounds the
	// number of simultaneously live entities.
	NumEntities int
	// NumComponents and NumQueries presize the registries.
	NumComponents int
	NumQueries    int
	// Logger receives the world's debug and warning lines. Nil means the
	// logrus standard logger.
	Logger *logrus.Entry
}

// DefaultConfig returns the configuration NewWorld falls back to for zero
// fields.
func DefaultConfig() Config {
	return Config{
		NumEntities:   defaultNumEntities,
		NumComponents: defaultNumComponents,
		NumQueries:    defaultNumQueries,
	}
}

// World owns the component pools, allocates entity ids and runs queries.
// Its registry mutex guards the pool and query tables and id allocation; the
// data itself is guarded by the column and index vector locks.
type World struct {
	mu        sync.RWMutex
	id        uuid.UUID
	log       *logrus.Entry
	pools     map[ComponentID]*pool
	queries   []*Query
	nextID    uint64
	free      []EntityID // FIFO
	entityIDs *View[uint32]
	resources *Resources
	events    *EventBus
}

// NewWorld creates a world and its entity-id pool, and returns the master
// view of entity ids: position i holds the id of the entity at slot i.
func NewWorld(cfg Config) (*World, *View[uint32], error) {
	def := DefaultConfig()
	if cfg.NumEntities == 0 {
		cfg.NumEntities = def.NumEntities
	}
	if cfg.NumEntities < 0 {
		return nil, nil, eris.Wrapf(ErrCapacityExceeded, "entity capacity %d", cfg.NumEntities)
	}
	if cfg.NumComponents <= 0 {
		cfg.NumComponents = def.NumComponents
	}
	if cfg.NumQueries <= 0 {
		cfg.NumQueries = def.NumQueries
	}
	id := uuid.New()
	log := cfg.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	w := &World{
		id:        id,
		log:       log.WithFields(logrus.Fields{"component": "world", "world": id.String()}),
		pools:     make(map[ComponentID]*pool, cfg.NumComponents+1),
		queries:   make([]*Query, 0, cfg.NumQueries),
		free:      make([]EntityID, 0, cfg.NumEntities),
		resources: NewResources(),
		events:    &EventBus{},
	}
	column := NewColumn[uint32](cfg.NumEntities)
	p := newPool(EntityIDComponent, column)
	w.pools[EntityIDComponent] = p
	w.entityIDs = column.ViewOf(p.indices)
	w.log.WithField("capacity", cfg.NumEntities).Debug("world created")
	return w, w.entityIDs, nil
}

// ID returns the identity the world's log lines carry.
func (w *World) ID() uuid.UUID {
	return w.id
}

// Logger returns the world's log entry.
func (w *World) Logger() *logrus.Entry {
	return w.log
}

// EntityIDs returns the master entity-id view.
func (w *World) EntityIDs() *View[uint32] {
	return w.entityIDs
}

// Resources returns the world's resource store.
func (w *World) Resources() *Resources {
	return w.resources
}

// Events returns the bus the world publishes Spawned and Despawned on.
func (w *World) Events() *EventBus {
	return w.events
}

// Len returns the number of live entities.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pools[EntityIDComponent].size()
}

// IsAlive reports whether id names a live entity.
func (w *World) IsAlive(id EntityID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pools[EntityIDComponent].has(id)
}

// Has reports whether the live entity id holds component c.
func (w *World) Has(id EntityID, c ComponentID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.pools[c]
	return ok && p.has(id)
}

// Slot returns the slot entity id occupies in component c's pool.
func (w *World) Slot(id EntityID, c ComponentID) (SlotIndex, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, ok := w.pools[c]
	if !ok {
		return 0, false
	}
	return p.slot(id)
}

// MasterIndices returns the master index vector of component c, which
// always covers exactly the pool's live slots.
func (w *World) MasterIndices(c ComponentID) (*Indices, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	p, err := w.poolLocked(c)
	if err != nil {
		return nil, err
	}
	return p.indices, nil
}

func (w *World) poolLocked(c ComponentID) (*pool, error) {
	p, ok := w.pools[c]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownComponent, "component %d", c)
	}
	return p, nil
}

// allocate hands out k entity ids, oldest recycled ids first.
func (w *World) allocate(k int) []EntityID {
	ids := make([]EntityID, 0, k)
	n := min(k, len(w.free))
	ids = append(ids, w.free[:n]...)
	w.free = w.free[n:]
	for len(ids) < k {
		ids = append(ids, EntityID(w.nextID))
		w.nextID++
	}
	return ids
}

func (w *World) available() uint64 {
	return uint64(len(w.free)) + (uint64(MaxEntityID) + 1 - w.nextID)
}

// Spawn creates count entities holding every component in components.
// Every pool, the entity-id pool included, is checked for room before any id
// is allocated, so a failed spawn commits nothing. Repeated component ids
// share one returned vector. A Spawned event is published once the world is
// unlocked.
//
// Parameters:
//   - components: The pools the new entities join, in the order the result
//     vectors are returned. Each must already be registered.
//   - count: The number of entities to create.
//
// Returns:
//   - One index vector per entry of components, aligned: position i of each
//     vector is the slot of the i-th new entity in that pool.
//   - ErrUnknownComponent or ErrCapacityExceeded when the spawn is rejected.
func (w *World) Spawn(components []ComponentID, count int) ([]*Indices, error) {
	if count < 0 {
		return nil, eris.Wrapf(ErrShapeMismatch, "spawn count %d", count)
	}
	ids, spawned, err := w.spawnLocked(components, count)
	if err != nil {
		return nil, err
	}
	out := make([]*Indices, len(components))
	for i, c := range components {
		out[i] = spawned[c]
	}
	w.log.WithFields(logrus.Fields{"count": count, "components": components}).Debug("entities spawned")
	Publish(w.events, Spawned{Components: append([]ComponentID(nil), components...), EntityIDs: ids})
	return out, nil
}

func (w *World) spawnLocked(components []ComponentID, count int) ([]EntityID, map[ComponentID]*Indices, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	targets := []*pool{w.pools[EntityIDComponent]}
	for _, c := range components {
		p, err := w.poolLocked(c)
		if err != nil {
			return nil, nil, err
		}
		if !containsPool(targets, p) {
			targets = append(targets, p)
		}
	}
	for _, p := range targets {
		if err := p.room(count); err != nil {
			w.log.WithError(err).WithField("count", count).Warn("spawn rejected")
			return nil, nil, err
		}
	}
	if left := w.available(); uint64(count) > left {
		err := eris.Wrapf(ErrCapacityExceeded, "%d entity ids requested, %d left", count, left)
		w.log.WithError(err).Warn("spawn rejected")
		return nil, nil, err
	}
	ids := w.allocate(count)
	spawned := make(map[ComponentID]*Indices, len(targets))
	for _, p := range targets {
		idx, err := p.spawn(ids)
		if err != nil {
			return nil, nil, err
		}
		spawned[p.id] = idx
	}
	raw := make([]uint32, len(ids))
	for i, id := range ids {
		raw[i] = uint32(id)
	}
	if err := w.entityIDs.column.ViewOf(spawned[EntityIDComponent]).Fill(Buffer[uint32](raw)); err != nil {
		return nil, nil, err
	}
	return ids, spawned, nil
}

func containsPool(ps []*pool, p *pool) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}

// Despawn removes every live entity named by ids from every pool and queues
// its id for reuse. The ids are read before any pool changes, so ids may be a
// view over the entity-id column itself. Ids that are not live are ignored.
func (w *World) Despawn(ids *View[uint32]) error {
	values, err := ids.Values()
	if err != nil {
		return err
	}
	removed, err := w.despawnLocked(values)
	if err != nil {
		return err
	}
	w.log.WithField("count", len(removed)).Debug("entities despawned")
	if len(removed) > 0 {
		Publish(w.events, Despawned{EntityIDs: removed})
	}
	return nil
}

func (w *World) despawnLocked(values []uint32) ([]EntityID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	master := w.pools[EntityIDComponent]
	var removed []EntityID
	for _, v := range values {
		id := EntityID(v)
		if !master.has(id) {
			continue
		}
		for _, p := range w.pools {
			if _, err := p.despawn(id); err != nil {
				return removed, err
			}
		}
		w.free = append(w.free, id)
		removed = append(removed, id)
	}
	return removed, nil
}
