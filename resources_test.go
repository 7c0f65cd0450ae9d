package retsu

import (
	"errors"
	"testing"
)

func TestResources(t *testing.T) {
	type gravity struct{ G float64 }
	type seed struct{ N int64 }

	t.Run("Add and Get", func(t *testing.T) {
		r := NewResources()
		res := &gravity{G: 9.81}
		id, err := r.Add(res)
		if err != nil || id != 0 {
			t.Fatalf("expected id 0, got %d (%v)", id, err)
		}
		if got, ok := r.Get(0); !ok || got != res {
			t.Errorf("expected %v, got %v", res, got)
		}
	})

	t.Run("Has", func(t *testing.T) {
		r := NewResources()
		_, _ = r.Add(&gravity{})
		if !r.Has(0) {
			t.Error("expected true")
		}
		if r.Has(1) || r.Has(-1) {
			t.Error("expected false")
		}
	})

	t.Run("Add same type fails", func(t *testing.T) {
		r := NewResources()
		_, _ = r.Add(&gravity{})
		if _, err := r.Add(&gravity{}); !errors.Is(err, ErrDuplicateResource) {
			t.Errorf("expected ErrDuplicateResource, got %v", err)
		}
	})

	t.Run("Set replaces", func(t *testing.T) {
		r := NewResources()
		id, _ := r.Add(&gravity{G: 1})
		next := &gravity{G: 2}
		again, err := r.Set(next)
		if err != nil || again != id {
			t.Fatalf("expected id %d, got %d (%v)", id, again, err)
		}
		if got, _ := GetResource[gravity](r); got != next {
			t.Errorf("expected the replacement, got %v", got)
		}
	})

	t.Run("Add after Remove reuses ids", func(t *testing.T) {
		r := NewResources()
		id0, _ := r.Add(&gravity{})
		id1, _ := r.Add(&seed{})
		r.Remove(id0)
		r.Remove(id1)
		if id, _ := r.Add(&gravity{}); id != 1 {
			t.Errorf("expected reused id 1, got %d", id)
		}
		if id, _ := r.Add(&seed{}); id != 0 {
			t.Errorf("expected reused id 0, got %d", id)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		r := NewResources()
		_, _ = r.Add(&gravity{})
		_, _ = r.Add(&seed{})
		r.Clear()
		if r.Len() != 0 || len(r.items) != 0 || len(r.freeIDs) != 0 {
			t.Error("expected an empty store")
		}
		if r.Has(0) {
			t.Error("expected false")
		}
	})

	t.Run("Add nil fails", func(t *testing.T) {
		r := NewResources()
		if _, err := r.Add(nil); !errors.Is(err, ErrInvalidObject) {
			t.Errorf("expected ErrInvalidObject, got %v", err)
		}
	})

	t.Run("Remove non-existent", func(t *testing.T) {
		r := NewResources()
		r.Remove(0)
		if _, ok := r.Get(0); ok {
			t.Error("expected nothing")
		}
	})

	t.Run("typed access", func(t *testing.T) {
		r := NewResources()
		res := &seed{N: 42}
		_, _ = r.Add(res)
		if ok, id := HasResource[seed](r); !ok || id != 0 {
			t.Errorf("expected seed at 0, got %v %d", ok, id)
		}
		if got, _ := GetResource[seed](r); got != res {
			t.Errorf("expected the same pointer %p, got %p", res, got)
		}
		if got, id := GetResource[gravity](r); got != nil || id != -1 {
			t.Error("expected no gravity")
		}
		RemoveResource[seed](r)
		if ok, _ := HasResource[seed](r); ok {
			t.Error("expected seed removed")
		}
	})
}
