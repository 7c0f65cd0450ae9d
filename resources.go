package retsu

import (
	"reflect"
	"sync"

	"github.com/rotisserie/eris"
)

// Resources is a world-scoped store holding at most one value per dynamic
// type: simulation parameters, random sources, shared lookup tables. Ids are
// recycled after Remove.
type Resources struct {
	mu      sync.RWMutex
	items   []any
	types   map[reflect.Type]int
	freeIDs []int
}

// NewResources returns an empty store.
func NewResources() *Resources {
	return &Resources{types: make(map[reflect.Type]int)}
}

// Add stores res and returns its id.
func (r *Resources) Add(res any) (int, error) {
	if res == nil {
		return -1, eris.Wrap(ErrInvalidObject, "nil resource")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t := reflect.TypeOf(res)
	if _, ok := r.types[t]; ok {
		return -1, eris.Wrapf(ErrDuplicateResource, "%s", t)
	}
	return r.insert(t, res), nil
}

// Set stores res, replacing any value of the same type, and returns its id.
func (r *Resources) Set(res any) (int, error) {
	if res == nil {
		return -1, eris.Wrap(ErrInvalidObject, "nil resource")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t := reflect.TypeOf(res)
	if id, ok := r.types[t]; ok {
		r.items[id] = res
		return id, nil
	}
	return r.insert(t, res), nil
}

func (r *Resources) insert(t reflect.Type, res any) int {
	var id int
	if n := len(r.freeIDs); n > 0 {
		id = r.freeIDs[n-1]
		r.freeIDs = r.freeIDs[:n-1]
		r.items[id] = res
	} else {
		r.items = append(r.items, res)
		id = len(r.items) - 1
	}
	r.types[t] = id
	return id
}

// Has reports whether id holds a resource.
func (r *Resources) Has(id int) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.has(id)
}

func (r *Resources) has(id int) bool {
	return id >= 0 && id < len(r.items) && r.items[id] != nil
}

// Get returns the resource stored under id.
func (r *Resources) Get(id int) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.has(id) {
		return nil, false
	}
	return r.items[id], true
}

// Remove drops the resource stored under id, if any.
func (r *Resources) Remove(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.has(id) {
		return
	}
	delete(r.types, reflect.TypeOf(r.items[id]))
	r.items[id] = nil
	r.freeIDs = append(r.freeIDs, id)
}

// Len returns the number of stored resources.
func (r *Resources) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Clear removes every resource.
func (r *Resources) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.items)
	r.items = r.items[:0]
	clear(r.types)
	r.freeIDs = r.freeIDs[:0]
}

// HasResource reports whether the store holds a *T, and its id.
func HasResource[T any](r *Resources) (bool, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.types[reflect.TypeOf((**T)(nil)).Elem()]
	if !ok {
		return false, -1
	}
	return true, id
}

// GetResource returns the stored *T and its id, or nil and -1.
func GetResource[T any](r *Resources) (*T, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.types[reflect.TypeOf((**T)(nil)).Elem()]
	if !ok {
		return nil, -1
	}
	return r.items[id].(*T), id
}

// RemoveResource drops the stored *T, if any.
func RemoveResource[T any](r *Resources) {
	if ok, id := HasResource[T](r); ok {
		r.Remove(id)
	}
}
