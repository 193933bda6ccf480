// Package bridge exposes a handle table to WebAssembly guests.
//
// It registers a "hostref" host module into a wazero runtime. Guest code
// sees refs only as handle indices (i32) and manages them through the
// exported functions:
//
//	is-null(h) -> i32        1 if h is the null handle or unknown
//	same(a, b) -> i32        1 if both handles reach the same referent
//	clone(h) -> i32          new handle sharing the same referent
//	drop(h) -> i32           free the handle; 1 on success
//	has-host-info(h) -> i32  1 if the referent carries host info
//	drop-host-info(h) -> i32 clear the referent's host info; 1 on success
//	count() -> i32           number of live handles
//
// Every function is total: an unknown handle yields 0/failure, never a trap.
//
// The package logger is a no-op by default; install one with SetLogger to
// see per-call debug logging.
package bridge
