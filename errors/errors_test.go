package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestError_Rendering(t *testing.T) {
	err := BorrowConflict("borrow-mut", "cell is already borrowed")
	got := err.Error()
	if !strings.Contains(got, "[borrow-mut]") {
		t.Fatalf("Expected op in message, got %q", got)
	}
	if !strings.Contains(got, "borrow_conflict") {
		t.Fatalf("Expected kind in message, got %q", got)
	}
	if !strings.Contains(got, "cell is already borrowed") {
		t.Fatalf("Expected detail in message, got %q", got)
	}
}

func TestError_RenderingTypes(t *testing.T) {
	err := TypeMismatch("as-cell", "hostref.Cell[int]", "hostref.Cell[string]")
	got := err.Error()
	if !strings.Contains(got, "want hostref.Cell[int]") {
		t.Fatalf("Expected want type in message, got %q", got)
	}
	if !strings.Contains(got, "got hostref.Cell[string]") {
		t.Fatalf("Expected got type in message, got %q", got)
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	err := BorrowConflict("borrow", "lent out")
	if !stderrors.Is(err, ErrBorrowConflict) {
		t.Fatal("Expected sentinel to match by kind")
	}
	if stderrors.Is(err, ErrTypeMismatch) {
		t.Fatal("Different kinds must not match")
	}
	if stderrors.Is(err, ErrNullRef) {
		t.Fatal("Different kinds must not match")
	}
}

func TestError_IsMatchesOp(t *testing.T) {
	err := NullRef("host-info")
	if !stderrors.Is(err, &Error{Op: "host-info", Kind: KindNullRef}) {
		t.Fatal("Expected match with same op and kind")
	}
	if stderrors.Is(err, &Error{Op: "data", Kind: KindNullRef}) {
		t.Fatal("Different op must not match when target sets one")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := &Error{Op: "borrow", Kind: KindBorrowConflict, Cause: cause}
	if !stderrors.Is(err, cause) {
		t.Fatal("Expected unwrap chain to reach cause")
	}
	if !strings.Contains(err.Error(), "caused by: boom") {
		t.Fatalf("Expected cause in message, got %q", err.Error())
	}
}
