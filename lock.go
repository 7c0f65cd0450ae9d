package retsu

import (
	"slices"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/rotisserie/eris"
)

// rwHandle is the reader-writer lock shared by a column or an index vector.
// A panic while the handle is held exclusively poisons it; every later
// acquisition fails with ErrStateCorrupted instead of observing torn data.
type rwHandle struct {
	mu       sync.RWMutex
	poisoned atomic.Bool
}

// addr orders handles for multi-lock acquisition. Heap objects do not move.
func (h *rwHandle) addr() uintptr {
	return uintptr(unsafe.Pointer(h))
}

func (h *rwHandle) corrupted() error {
	return eris.Wrap(ErrStateCorrupted, "lock poisoned by an earlier panic")
}

func (h *rwHandle) rlock() error {
	if h.poisoned.Load() {
		return h.corrupted()
	}
	h.mu.RLock()
	if h.poisoned.Load() {
		h.mu.RUnlock()
		return h.corrupted()
	}
	return nil
}

func (h *rwHandle) lock() error {
	if h.poisoned.Load() {
		return h.corrupted()
	}
	h.mu.Lock()
	if h.poisoned.Load() {
		h.mu.Unlock()
		return h.corrupted()
	}
	return nil
}

// read runs fn under the shared lock.
func (h *rwHandle) read(fn func() error) error {
	var s lockSet
	s.read(h)
	return s.run(fn)
}

// write runs fn under the exclusive lock.
func (h *rwHandle) write(fn func() error) error {
	var s lockSet
	s.write(h)
	return s.run(fn)
}

type lockEntry struct {
	h     *rwHandle
	write bool
}

// lockSet collects the handles one operation needs. Handles are deduplicated
// (exclusive wins over shared) and acquired in ascending address order, so
// two operations over the same handles can never deadlock each other and an
// aliased operation never read-locks a handle it already holds exclusively.
type lockSet struct {
	entries []lockEntry
}

func (s *lockSet) add(h *rwHandle, write bool) {
	for i := range s.entries {
		if s.entries[i].h == h {
			s.entries[i].write = s.entries[i].write || write
			return
		}
	}
	s.entries = append(s.entries, lockEntry{h: h, write: write})
}

func (s *lockSet) read(h *rwHandle)  { s.add(h, false) }
func (s *lockSet) write(h *rwHandle) { s.add(h, true) }

func (s *lockSet) acquire() error {
	slices.SortFunc(s.entries, func(a, b lockEntry) int {
		switch {
		case a.h.addr() < b.h.addr():
			return -1
		case a.h.addr() > b.h.addr():
			return 1
		}
		return 0
	})
	for i, e := range s.entries {
		var err error
		if e.write {
			err = e.h.lock()
		} else {
			err = e.h.rlock()
		}
		if err != nil {
			s.releaseFirst(i)
			return err
		}
	}
	return nil
}

func (s *lockSet) releaseFirst(n int) {
	for i := n - 1; i >= 0; i-- {
		e := s.entries[i]
		if e.write {
			e.h.mu.Unlock()
		} else {
			e.h.mu.RUnlock()
		}
	}
}

// run acquires the set, calls fn and releases the set. If fn panics, every
// handle held exclusively is poisoned before the panic continues.
func (s *lockSet) run(fn func() error) (err error) {
	if err := s.acquire(); err != nil {
		return err
	}
	done := false
	defer func() {
		if !done {
			for _, e := range s.entries {
				if e.write {
					e.h.poisoned.Store(true)
				}
			}
		}
		s.releaseFirst(len(s.entries))
	}()
	err = fn()
	done = true
	return err
}
