package retsu

import (
	"sync"
	"testing"
)

type testEvent struct {
	Value int
}

func TestEventBusSubscribeAndPublish(t *testing.T) {
	bus := &EventBus{}
	received := 0
	Subscribe(bus, func(e testEvent) {
		received += e.Value
	})
	Subscribe(bus, func(e testEvent) {
		received += e.Value * 2
	})
	Publish(bus, testEvent{Value: 1})
	if received != 3 {
		t.Errorf("expected received 3, got %d", received)
	}
	Publish(bus, testEvent{Value: 2})
	if received != 3+6 {
		t.Errorf("expected received 9, got %d", received)
	}
}

func TestEventBusMultipleTypes(t *testing.T) {
	bus := &EventBus{}
	spawned, despawned := 0, 0
	Subscribe(bus, func(e Spawned) {
		spawned += len(e.EntityIDs)
	})
	Subscribe(bus, func(e Despawned) {
		despawned += len(e.EntityIDs)
	})
	Publish(bus, Spawned{EntityIDs: []EntityID{1, 2}})
	Publish(bus, Despawned{EntityIDs: []EntityID{1}})
	if spawned != 2 || despawned != 1 {
		t.Errorf("expected 2 and 1, got %d and %d", spawned, despawned)
	}
}

func TestEventBusNoHandlers(t *testing.T) {
	bus := &EventBus{}
	// No panic expected
	Publish(bus, testEvent{Value: 42})
}

func TestEventBusSubscribeFromHandler(t *testing.T) {
	bus := &EventBus{}
	calls := 0
	Subscribe(bus, func(testEvent) {
		calls++
		Subscribe(bus, func(testEvent) { calls += 10 })
	})
	Publish(bus, testEvent{})
	if calls != 1 {
		t.Errorf("a handler added while publishing must wait for the next event, got %d", calls)
	}
	Publish(bus, testEvent{})
	if calls != 1+1+10 {
		t.Errorf("expected 12, got %d", calls)
	}
}

func TestEventBusConcurrent(t *testing.T) {
	bus := &EventBus{}
	var mu sync.Mutex
	received := 0
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Subscribe(bus, func(e testEvent) {
				mu.Lock()
				received += e.Value
				mu.Unlock()
			})
			Publish(bus, testEvent{Value: 1})
		}()
	}
	wg.Wait()
	if received == 0 {
		t.Error("expected at least one delivery")
	}
}
