package table

import (
	"errors"
	"sync"

	"github.com/wippyai/hostref"
)

var (
	ErrClosed            = errors.New("handle table closed")
	ErrOutstandingBorrow = errors.New("cannot remove handle with outstanding borrows")
)

// Table maps guest-visible handles to Refs, with borrow tracking and
// lifecycle observers. Freed handles are reused via a free list.
type Table struct {
	entries   []entry
	freeList  []Handle
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

type entry struct {
	ref         hostref.Ref
	borrowCount uint32
	valid       bool
}

// New creates an empty table.
func New() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Insert stores a ref and returns its handle. A null ref maps to
// NullHandle without occupying a slot.
func (t *Table) Insert(ref hostref.Ref) (Handle, error) {
	if ref.IsNull() {
		return NullHandle, nil
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return NullHandle, ErrClosed
	}

	e := entry{ref: ref, valid: true}

	var handle Handle
	if len(t.freeList) > 0 {
		handle = t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[handle-1] = e
	} else {
		t.entries = append(t.entries, e)
		handle = Handle(len(t.entries))
	}
	t.mu.Unlock()

	t.notify(Event{Type: EventInserted, Handle: handle, Ref: ref})
	return handle, nil
}

// Get resolves a handle. NullHandle resolves to the null ref.
func (t *Table) Get(handle Handle) (hostref.Ref, bool) {
	if handle == NullHandle {
		return hostref.Null(), true
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		return hostref.Ref{}, false
	}

	e := t.entries[idx]
	if !e.valid {
		return hostref.Ref{}, false
	}
	return e.ref, true
}

// Remove frees a handle and returns its ref. It fails on NullHandle, on an
// unknown handle, and on a handle with outstanding borrows.
func (t *Table) Remove(handle Handle) (hostref.Ref, bool) {
	if handle == NullHandle {
		return hostref.Ref{}, false
	}

	t.mu.Lock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		t.mu.Unlock()
		return hostref.Ref{}, false
	}

	e := &t.entries[idx]
	if !e.valid || e.borrowCount > 0 {
		t.mu.Unlock()
		return hostref.Ref{}, false
	}

	ref := e.ref
	e.valid = false
	e.ref = hostref.Ref{}
	t.freeList = append(t.freeList, handle)
	t.mu.Unlock()

	t.notify(Event{Type: EventRemoved, Handle: handle, Ref: ref})
	return ref, true
}

// Borrow marks a handle as lent to a guest call.
func (t *Table) Borrow(handle Handle) bool {
	if handle == NullHandle {
		return false
	}

	t.mu.Lock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		t.mu.Unlock()
		return false
	}

	e := &t.entries[idx]
	if !e.valid {
		t.mu.Unlock()
		return false
	}

	e.borrowCount++
	ref := e.ref
	t.mu.Unlock()

	t.notify(Event{Type: EventBorrowed, Handle: handle, Ref: ref})
	return true
}

// ReturnBorrow returns a loan taken with Borrow.
func (t *Table) ReturnBorrow(handle Handle) bool {
	if handle == NullHandle {
		return false
	}

	t.mu.Lock()

	idx := handle - 1
	if int(idx) >= len(t.entries) {
		t.mu.Unlock()
		return false
	}

	e := &t.entries[idx]
	if !e.valid || e.borrowCount == 0 {
		t.mu.Unlock()
		return false
	}

	e.borrowCount--
	ref := e.ref
	t.mu.Unlock()

	t.notify(Event{Type: EventBorrowReturned, Handle: handle, Ref: ref})
	return true
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, e := range t.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Each iterates over all live handles.
func (t *Table) Each(fn func(Handle, hostref.Ref) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if e.valid {
			if !fn(Handle(i+1), e.ref) {
				break
			}
		}
	}
}

// Clear frees every handle, ignoring outstanding borrows.
func (t *Table) Clear() {
	t.mu.Lock()
	removed := make([]Event, 0, len(t.entries))
	for i := range t.entries {
		if t.entries[i].valid {
			removed = append(removed, Event{
				Type:   EventRemoved,
				Handle: Handle(i + 1),
				Ref:    t.entries[i].ref,
			})
			t.entries[i] = entry{}
			t.freeList = append(t.freeList, Handle(i+1))
		}
	}
	t.mu.Unlock()

	for _, ev := range removed {
		t.notify(ev)
	}
}

// Close frees every handle and stops accepting inserts.
func (t *Table) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.entries = nil
	t.freeList = nil
	t.mu.Unlock()
	return nil
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(obs Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, obs)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(obs Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, o := range t.observers {
		if o == obs {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

func (t *Table) notify(ev Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnHandleEvent(ev)
	}
}
