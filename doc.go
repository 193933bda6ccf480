// Package hostref provides opaque host references for WebAssembly embeddings.
//
// A guest program can hold references to data it cannot inspect: values that
// live inside the embedding host. This package implements the host side of
// that contract as a single handle type, Ref, unifying two ownership worlds:
//
//   - data owned by the runtime itself, stored in a typed Cell[T] and
//     reachable again through a failable downcast, and
//   - data owned entirely by embedder code, wrapped as an opaque payload.
//
// # Architecture Overview
//
//	hostref/         Core Ref, Cell[T] and borrow machinery
//	├── errors/      Structured error types (borrow conflict, type mismatch, null ref)
//	├── table/       Guest-visible handle table over Refs with lifecycle observers
//	├── bridge/      wazero host module exposing a table to guest code
//	└── cmd/refwatch TUI inspector for a live handle table
//
// # Quick Start
//
// Create a typed cell, hand out an opaque reference, and get the cell back:
//
//	c := hostref.NewCell(42)
//	r, err := c.Externalize()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Elsewhere, without static knowledge of the cell:
//	if hostref.IsCell[int](r) {
//	    c2, _ := hostref.AsCell[int](r)
//	    v, _ := c2.Borrow()
//	    fmt.Println(v.Value()) // 42
//	    v.Release()
//	}
//
// Wrap embedder-owned data that the runtime never inspects:
//
//	r := hostref.New(myOpaqueThing)
//
// # Identity
//
// Refs compare by identity, never by value. Same reports whether two refs
// reach the same storage; clones of a cell and repeated externalizations of
// a live cell all compare identical. A cell caches its minted identity
// weakly: once every Ref produced by Externalize has been dropped and
// collected, the next Externalize mints a fresh identity.
//
// # Borrowing
//
// Cells are dynamically borrow checked. Any number of shared views or
// exactly one mutable view may be outstanding; a conflicting request fails
// immediately with a borrow-conflict error rather than blocking. There is
// no waiting and no deadlock by construction.
//
// # Thread Safety
//
// Ref and Cell are NOT safe for concurrent use. The model is cooperative and
// single-goroutine, matching the synchronous host-call boundary they serve.
// The table and bridge packages guard their own bookkeeping and may be
// shared, but the Refs they store inherit this restriction.
package hostref
