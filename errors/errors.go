package errors

import "strings"

// Kind categorizes the error.
type Kind string

const (
	KindBorrowConflict Kind = "borrow_conflict"
	KindTypeMismatch   Kind = "type_mismatch"
	KindNullRef        Kind = "null_ref"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrBorrowConflict = &Error{Kind: KindBorrowConflict}
	ErrTypeMismatch   = &Error{Kind: KindTypeMismatch}
	ErrNullRef        = &Error{Kind: KindNullRef}
)

// Error is the structured error type used throughout hostref.
type Error struct {
	Cause  error
	Op     string
	Kind   Kind
	Want   string
	Got    string
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(e.Op)
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Want != "" || e.Got != "" {
		b.WriteString(": ")
		if e.Want != "" && e.Got != "" {
			b.WriteString("want ")
			b.WriteString(e.Want)
			b.WriteString(", got ")
			b.WriteString(e.Got)
		} else if e.Want != "" {
			b.WriteString("want ")
			b.WriteString(e.Want)
		} else {
			b.WriteString("got ")
			b.WriteString(e.Got)
		}
	}

	if e.Detail != "" {
		if e.Want != "" || e.Got != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. A target with an empty Op
// matches on Kind alone, so the package sentinels match every error of
// their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op != "" && t.Op != e.Op {
		return false
	}
	return e.Kind == t.Kind
}

// Convenience constructors, one per kind.

// BorrowConflict creates a borrow conflict error for the given operation.
func BorrowConflict(op, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindBorrowConflict,
		Detail: detail,
	}
}

// TypeMismatch creates a type mismatch error naming the requested and
// actual types.
func TypeMismatch(op, want, got string) *Error {
	return &Error{
		Op:   op,
		Kind: KindTypeMismatch,
		Want: want,
		Got:  got,
	}
}

// NullRef creates a null referent error for the given operation.
func NullRef(op string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindNullRef,
		Detail: "ref has no referent",
	}
}
