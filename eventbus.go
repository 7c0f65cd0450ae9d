package retsu

import (
	"reflect"
	"sync"
)

// MaxEventTypes is the number of distinct event types a bus can carry.
const MaxEventTypes = 256

// Spawned is published after a successful Spawn.
type Spawned struct {
	Components []ComponentID
	EntityIDs  []EntityID
}

// Despawned is published after a Despawn that removed at least one entity.
type Despawned struct {
	EntityIDs []EntityID
}

// EventBus is a typed, synchronous publish/subscribe bus. Handlers run on the
// publishing goroutine in subscription order, after the world has released
// its registry lock, so a handler may call back into the world.
type EventBus struct {
	mu              sync.RWMutex
	eventTypeMap    map[reflect.Type]uint8
	handlers        [MaxEventTypes][]any
	nextEventTypeID int
}

// Subscribe registers handler for events of type T.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	id := bus.eventTypeID(reflect.TypeOf((*T)(nil)).Elem())
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]any, 0, 4)
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish calls every handler subscribed to T with event.
func Publish[T any](bus *EventBus, event T) {
	bus.mu.RLock()
	id, ok := bus.eventTypeMap[reflect.TypeOf((*T)(nil)).Elem()]
	var hs []any
	if ok {
		hs = bus.handlers[id]
	}
	bus.mu.RUnlock()
	for _, h := range hs {
		h.(func(T))(event)
	}
}

// eventTypeID is called with bus.mu held.
func (bus *EventBus) eventTypeID(t reflect.Type) uint8 {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	if bus.nextEventTypeID >= MaxEventTypes {
		panic("retsu: too many event types")
	}
	id := uint8(bus.nextEventTypeID)
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}
