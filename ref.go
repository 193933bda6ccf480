package hostref

import (
	"reflect"

	"github.com/wippyai/hostref/errors"
)

// Ref is an opaque reference to data that may live inside the runtime's
// typed cells or entirely outside it. A Ref is one of three things, fixed
// at construction: the null ref, a reference to an internal Cell[T], or a
// reference to an external payload. Copying a Ref shares the referent, it
// never deep-copies.
//
// The zero value is the null ref.
type Ref struct {
	internal *erased
	external *externBox
}

// Null returns the null ref: no content, no host info.
func Null() Ref {
	return Ref{}
}

// New wraps a host-external payload in a fresh external box and returns a
// ref to it. The payload is opaque to this layer and is never downcast.
func New(payload any) Ref {
	return Ref{external: newExternBox(payload)}
}

// IsNull reports whether r is the null ref.
func (r Ref) IsNull() bool {
	return r.internal == nil && r.external == nil
}

// Same reports whether two refs reach the same storage, not whether their
// contents compare equal. Null is identical only to null; refs of different
// variants are never identical; internal refs are identical only when they
// erase a cell of the same concrete type backed by the same storage.
func (r Ref) Same(other Ref) bool {
	switch {
	case r.internal != nil:
		return other.internal != nil && r.internal.cell.sameStorage(other.internal.cell)
	case r.external != nil:
		return r.external == other.external
	default:
		return other.IsNull()
	}
}

// Data returns the external payload. It fails with a type-mismatch error on
// an internal ref (the content there is reached via AsCell) and a null-ref
// error on the null ref.
func (r Ref) Data() (any, error) {
	switch {
	case r.external != nil:
		return r.external.data(), nil
	case r.internal != nil:
		return nil, errors.TypeMismatch("data", "external payload", "internal cell")
	default:
		return nil, errors.NullRef("data")
	}
}

// HostInfo returns the referent's embedder-attached payload, or nil if
// absent. It fails with a null-ref error on the null ref, and with a
// borrow-conflict error if an internal referent is mutably borrowed.
func (r Ref) HostInfo() (any, error) {
	switch {
	case r.internal != nil:
		return r.internal.cell.hostInfo()
	case r.external != nil:
		return r.external.hostInfo(), nil
	default:
		return nil, errors.NullRef("host-info")
	}
}

// SetHostInfo replaces the referent's host-info slot; nil clears it. It
// fails with a null-ref error on the null ref, and with a borrow-conflict
// error if an internal referent is currently borrowed.
func (r Ref) SetHostInfo(info any) error {
	switch {
	case r.internal != nil:
		return r.internal.cell.setHostInfo(info)
	case r.external != nil:
		r.external.setHostInfo(info)
		return nil
	default:
		return errors.NullRef("set-host-info")
	}
}

// String renders the variant without exposing any content.
func (r Ref) String() string {
	switch {
	case r.internal != nil:
		return "hostref"
	case r.external != nil:
		return "extern"
	default:
		return "null"
	}
}

// IsCell reports whether r refers to an internal Cell[T] for this exact T.
func IsCell[T any](r Ref) bool {
	if r.internal == nil {
		return false
	}
	_, ok := r.internal.cell.concrete().(Cell[T])
	return ok
}

// AsCell recovers the concrete Cell[T] behind an internal ref. The result
// shares storage with, and compares identical to, the cell that was
// externalized. It fails with a null-ref error on the null ref and a
// type-mismatch error when the referent is external or a cell of another
// type.
func AsCell[T any](r Ref) (Cell[T], error) {
	want := reflect.TypeFor[Cell[T]]().String()
	switch {
	case r.internal != nil:
		c, ok := r.internal.cell.concrete().(Cell[T])
		if !ok {
			got := reflect.TypeOf(r.internal.cell.concrete()).String()
			return Cell[T]{}, errors.TypeMismatch("as-cell", want, got)
		}
		return c, nil
	case r.external != nil:
		return Cell[T]{}, errors.TypeMismatch("as-cell", want, "external payload")
	default:
		return Cell[T]{}, errors.NullRef("as-cell")
	}
}
