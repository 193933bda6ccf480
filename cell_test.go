package hostref

import (
	"errors"
	"testing"

	hosterrors "github.com/wippyai/hostref/errors"
)

func TestCell_BorrowBasic(t *testing.T) {
	c := NewCell(42)

	v, err := c.Borrow()
	if err != nil {
		t.Fatalf("Borrow failed: %v", err)
	}
	if v.Value() != 42 {
		t.Fatalf("Expected 42, got %v", v.Value())
	}

	// A second shared view is fine.
	v2, err := c.Borrow()
	if err != nil {
		t.Fatalf("Second Borrow failed: %v", err)
	}
	v2.Release()
	v.Release()
}

func TestCell_BorrowMutExclusive(t *testing.T) {
	c := NewCell("hello")

	m, err := c.BorrowMut()
	if err != nil {
		t.Fatalf("BorrowMut failed: %v", err)
	}

	if _, err := c.Borrow(); !errors.Is(err, hosterrors.ErrBorrowConflict) {
		t.Fatalf("Expected borrow conflict, got %v", err)
	}
	if _, err := c.BorrowMut(); !errors.Is(err, hosterrors.ErrBorrowConflict) {
		t.Fatalf("Expected borrow conflict, got %v", err)
	}

	m.Set("world")
	m.Release()

	// After release, borrowing succeeds again and sees the mutation.
	v, err := c.Borrow()
	if err != nil {
		t.Fatalf("Borrow after release failed: %v", err)
	}
	if v.Value() != "world" {
		t.Fatalf("Expected mutated content, got %q", v.Value())
	}
	v.Release()
}

func TestCell_BorrowMutBlockedByReader(t *testing.T) {
	c := NewCell(1)

	v, err := c.Borrow()
	if err != nil {
		t.Fatalf("Borrow failed: %v", err)
	}
	if _, err := c.BorrowMut(); !errors.Is(err, hosterrors.ErrBorrowConflict) {
		t.Fatalf("Expected borrow conflict while shared view is out, got %v", err)
	}
	v.Release()

	m, err := c.BorrowMut()
	if err != nil {
		t.Fatalf("BorrowMut after release failed: %v", err)
	}
	*m.Value() = 2
	m.Release()

	v, _ = c.Borrow()
	if v.Value() != 2 {
		t.Fatalf("Expected 2, got %d", v.Value())
	}
	v.Release()
}

func TestCell_ReleaseIdempotent(t *testing.T) {
	c := NewCell(7)

	v, _ := c.Borrow()
	v.Release()
	v.Release() // must not underflow the loan count

	m, err := c.BorrowMut()
	if err != nil {
		t.Fatalf("BorrowMut failed after double release: %v", err)
	}
	m.Release()
	m.Release()

	if _, err := c.Borrow(); err != nil {
		t.Fatalf("Borrow failed after double release: %v", err)
	}
}

func TestCell_SameIsStorageIdentity(t *testing.T) {
	a := NewCell(5)
	clone := a
	b := NewCell(5)

	if !a.Same(clone) {
		t.Fatal("Clones of the same cell must be identical")
	}
	if a.Same(b) {
		t.Fatal("Independent cells with equal content must not be identical")
	}
}

func TestCell_HostInfo(t *testing.T) {
	c := NewCell(3.14)

	info, err := c.HostInfo()
	if err != nil {
		t.Fatalf("HostInfo failed: %v", err)
	}
	if info != nil {
		t.Fatalf("Expected absent host info, got %v", info)
	}

	if err := c.SetHostInfo("tag"); err != nil {
		t.Fatalf("SetHostInfo failed: %v", err)
	}
	info, err = c.HostInfo()
	if err != nil {
		t.Fatalf("HostInfo failed: %v", err)
	}
	if info != "tag" {
		t.Fatalf("Expected \"tag\", got %v", info)
	}

	// Clearing with nil.
	if err := c.SetHostInfo(nil); err != nil {
		t.Fatalf("SetHostInfo(nil) failed: %v", err)
	}
	info, _ = c.HostInfo()
	if info != nil {
		t.Fatalf("Expected cleared host info, got %v", info)
	}
}

func TestCell_HostInfoBorrowDiscipline(t *testing.T) {
	c := NewCell(1)

	// A shared view blocks writes but not reads.
	v, _ := c.Borrow()
	if err := c.SetHostInfo("x"); !errors.Is(err, hosterrors.ErrBorrowConflict) {
		t.Fatalf("Expected borrow conflict setting info under shared view, got %v", err)
	}
	if _, err := c.HostInfo(); err != nil {
		t.Fatalf("HostInfo under shared view failed: %v", err)
	}
	v.Release()

	// A mutable view blocks both.
	m, _ := c.BorrowMut()
	if _, err := c.HostInfo(); !errors.Is(err, hosterrors.ErrBorrowConflict) {
		t.Fatalf("Expected borrow conflict reading info under mutable view, got %v", err)
	}
	if err := c.SetHostInfo("x"); !errors.Is(err, hosterrors.ErrBorrowConflict) {
		t.Fatalf("Expected borrow conflict setting info under mutable view, got %v", err)
	}
	m.Release()

	if err := c.SetHostInfo("x"); err != nil {
		t.Fatalf("SetHostInfo after release failed: %v", err)
	}
}

func TestCell_String(t *testing.T) {
	c := NewCell(9)
	if c.String() != "Cell(9)" {
		t.Fatalf("Unexpected rendering: %q", c.String())
	}

	m, _ := c.BorrowMut()
	if c.String() != "Cell(<mutably borrowed>)" {
		t.Fatalf("Unexpected rendering under mutable view: %q", c.String())
	}
	m.Release()
}
