package retsu

import (
	"sync"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// QueryID identifies a query registered with a World, in registration order.
type QueryID int

// Query is a registered intersection over the live entity sets of a list of
// components. Running it yields one index vector per component, aligned so
// that position i of every vector is the same entity. Entities are emitted in
// ascending EntityID order.
//
// Results are cached against the membership version of every pool involved;
// any spawn or despawn that touches one of them recomputes on the next run.
type Query struct {
	mu         sync.Mutex
	components []ComponentID
	pools      []*pool // aligned with components
	distinct   []*pool
	versions   []uint64 // aligned with distinct, valid when cached != nil
	cached     [][]uint32
}

func newQuery(components []ComponentID, pools []*pool) *Query {
	q := &Query{
		components: append([]ComponentID(nil), components...),
		pools:      pools,
	}
	for _, p := range pools {
		if !containsPool(q.distinct, p) {
			q.distinct = append(q.distinct, p)
		}
	}
	q.versions = make([]uint64, len(q.distinct))
	return q
}

// Components returns the component list the query was registered with.
func (q *Query) Components() []ComponentID {
	return append([]ComponentID(nil), q.components...)
}

func (q *Query) run() [][]uint32 {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pools) == 0 {
		return nil
	}
	for _, p := range q.distinct {
		p.mu.RLock()
	}
	defer func() {
		for _, p := range q.distinct {
			p.mu.RUnlock()
		}
	}()
	if q.cached == nil || q.stale() {
		q.compute()
	}
	out := make([][]uint32, len(q.cached))
	for i, slots := range q.cached {
		out[i] = append(make([]uint32, 0, len(slots)), slots...)
	}
	return out
}

func (q *Query) stale() bool {
	for i, p := range q.distinct {
		if p.version != q.versions[i] {
			return true
		}
	}
	return false
}

// compute walks the smallest live set and keeps the entities every other
// pool holds too. Callers hold every pool's read lock.
func (q *Query) compute() {
	seed := q.distinct[0]
	for _, p := range q.distinct[1:] {
		if len(p.entities) < len(seed.entities) {
			seed = p
		}
	}
	q.cached = make([][]uint32, len(q.pools))
	for i := range q.cached {
		q.cached[i] = make([]uint32, 0, len(seed.entities))
	}
	row := make([]uint32, len(q.pools))
	seed.live.Ascend(func(e EntityID) bool {
		for i, p := range q.pools {
			s, ok := p.slots[e]
			if !ok {
				return true
			}
			row[i] = s
		}
		for i, s := range row {
			q.cached[i] = append(q.cached[i], s)
		}
		return true
	})
	for i, p := range q.distinct {
		q.versions[i] = p.version
	}
}

// RegisterQuery registers the intersection of components and returns its
// id. Every component must already be registered.
func (w *World) RegisterQuery(components ...ComponentID) (QueryID, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	pools := make([]*pool, len(components))
	for i, c := range components {
		p, err := w.poolLocked(c)
		if err != nil {
			return 0, err
		}
		pools[i] = p
	}
	id := QueryID(len(w.queries))
	w.queries = append(w.queries, newQuery(components, pools))
	w.log.WithFields(logrus.Fields{"query": id, "components": components}).Debug("query registered")
	return id, nil
}

// RunQuery returns the live entities holding every component of query id.
// Results are cached until a spawn or despawn touches one of the pools.
//
// Parameters:
//   - id: A QueryID returned by RegisterQuery.
//
// Returns:
//   - One freshly allocated index vector per component, in registration
//     order. Position i of every vector belongs to the same entity, and
//     entities appear in ascending EntityID order. A query over no
//     components returns no vectors.
//   - ErrOutOfRange when id was never registered.
func (w *World) RunQuery(id QueryID) ([]*Indices, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if id < 0 || int(id) >= len(w.queries) {
		return nil, eris.Wrapf(ErrOutOfRange, "query %d, %d registered", id, len(w.queries))
	}
	rows := w.queries[id].run()
	out := make([]*Indices, len(rows))
	for i, slots := range rows {
		out[i] = newIndicesOwned(slots)
	}
	return out, nil
}

// Query returns the registered query id.
func (w *World) Query(id QueryID) (*Query, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if id < 0 || int(id) >= len(w.queries) {
		return nil, eris.Wrapf(ErrOutOfRange, "query %d, %d registered", id, len(w.queries))
	}
	return w.queries[id], nil
}
