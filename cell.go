package hostref

import (
	"fmt"
	"weak"

	"github.com/wippyai/hostref/errors"
)

// internalCell is the capability a typed cell exposes across type erasure:
// identity comparison, host-info delegation, and recovery of the concrete
// cell value for downcasting.
type internalCell interface {
	// sameStorage reports whether other is a cell of the same concrete type
	// backed by the same storage. A type mismatch is unequal, not an error.
	sameStorage(other internalCell) bool

	hostInfo() (any, error)
	setHostInfo(info any) error

	// concrete returns the cell itself (e.g. a Cell[T]) for type assertion.
	concrete() any
}

// erased pins one minted identity for a cell. Refs hold it strongly; the
// cell holds it only weakly, so an identity lives exactly as long as its
// last Ref and a later Externalize mints a fresh one.
type erased struct {
	cell internalCell
}

type cellBox[T any] struct {
	content  T
	info     any
	flag     borrowFlag
	identity weak.Pointer[erased]
}

// Cell owns a value of a statically known type T behind a dynamically
// borrow-checked slot, together with an optional host-info payload and a
// weakly cached erased identity. Copying a Cell shares the storage; all
// copies compare identical under Same.
type Cell[T any] struct {
	box *cellBox[T]
}

// NewCell creates a cell owning content. Host info starts absent and no
// identity is minted until the first Externalize.
func NewCell[T any](content T) Cell[T] {
	return Cell[T]{box: &cellBox[T]{content: content}}
}

// Borrow takes a shared read view of the content. Any number of shared
// views may be outstanding at once; Borrow fails with a borrow-conflict
// error while a mutable view is out.
func (c Cell[T]) Borrow() (*View[T], error) {
	if !c.box.flag.share() {
		return nil, errors.BorrowConflict("borrow", "cell is mutably borrowed")
	}
	return &View[T]{box: c.box}, nil
}

// BorrowMut takes the exclusive mutable view of the content. It fails with
// a borrow-conflict error while any view, shared or mutable, is out.
func (c Cell[T]) BorrowMut() (*MutView[T], error) {
	if !c.box.flag.exclusive() {
		return nil, errors.BorrowConflict("borrow-mut", "cell is already borrowed")
	}
	return &MutView[T]{box: c.box}, nil
}

// Same reports whether both cells are backed by the same storage. Content
// equality plays no part.
func (c Cell[T]) Same(other Cell[T]) bool {
	return c.box == other.box
}

// Externalize returns an opaque Ref to this cell. While any Ref produced
// here is still alive the cached identity is reused, so repeated calls
// yield refs that compare identical under Ref.Same; once every such Ref has
// been dropped and collected, the next call mints a fresh identity.
//
// The identity cache is read under the same discipline as a momentary
// exclusive access: calling Externalize while holding a mutable view of
// this cell fails with a borrow-conflict error. Shared views do not
// conflict.
func (c Cell[T]) Externalize() (Ref, error) {
	if c.box.flag.writing() {
		return Ref{}, errors.BorrowConflict("externalize", "cell is mutably borrowed")
	}
	if id := c.box.identity.Value(); id != nil {
		return Ref{internal: id}, nil
	}
	id := &erased{cell: c}
	c.box.identity = weak.Make(id)
	return Ref{internal: id}, nil
}

// HostInfo returns the embedder-attached payload, or nil if absent.
func (c Cell[T]) HostInfo() (any, error) {
	return c.hostInfo()
}

// SetHostInfo replaces the embedder-attached payload. nil clears the slot.
func (c Cell[T]) SetHostInfo(info any) error {
	return c.setHostInfo(info)
}

func (c Cell[T]) String() string {
	if c.box.flag.writing() {
		return "Cell(<mutably borrowed>)"
	}
	return fmt.Sprintf("Cell(%v)", c.box.content)
}

// internalCell implementation. The host-info slot follows the borrow
// discipline of the content: reads need the cell to not be mutably lent,
// writes need it entirely free.

func (c Cell[T]) sameStorage(other internalCell) bool {
	o, ok := other.(Cell[T])
	return ok && o.box == c.box
}

func (c Cell[T]) hostInfo() (any, error) {
	if c.box.flag.writing() {
		return nil, errors.BorrowConflict("host-info", "cell is mutably borrowed")
	}
	return c.box.info, nil
}

func (c Cell[T]) setHostInfo(info any) error {
	if c.box.flag.lent() {
		return errors.BorrowConflict("set-host-info", "cell is borrowed")
	}
	c.box.info = info
	return nil
}

func (c Cell[T]) concrete() any {
	return c
}

// View is a shared read view of a cell's content. It must not be used
// after Release.
type View[T any] struct {
	box      *cellBox[T]
	released bool
}

// Value returns the content.
func (v *View[T]) Value() T {
	return v.box.content
}

// Release returns the loan. Safe to call more than once.
func (v *View[T]) Release() {
	if v.released {
		return
	}
	v.released = true
	v.box.flag.unshare()
}

// MutView is the exclusive mutable view of a cell's content. It must not
// be used after Release.
type MutView[T any] struct {
	box      *cellBox[T]
	released bool
}

// Value returns a pointer to the content for in-place mutation.
func (v *MutView[T]) Value() *T {
	return &v.box.content
}

// Set replaces the content.
func (v *MutView[T]) Set(content T) {
	v.box.content = content
}

// Release returns the loan. Safe to call more than once.
func (v *MutView[T]) Release() {
	if v.released {
		return
	}
	v.released = true
	v.box.flag.release()
}
