// Package table provides the guest-visible handle namespace over Refs.
//
// Guest code cannot hold a Ref directly; it holds a small integer. The
// Table maps those integers to Refs:
//
//	tbl := table.New()
//
//	// Insert a ref, get a handle for the guest
//	h, err := tbl.Insert(ref)
//
//	// Resolve a handle coming back from the guest
//	ref, ok := tbl.Get(h)
//
//	// Remove when the guest drops its handle
//	ref, ok := tbl.Remove(h)
//
// Handle 0 is reserved for the null ref: inserting a null Ref yields handle
// 0, and resolving handle 0 yields the null Ref. Freed handles are reused.
//
// # Borrows
//
// While a handle is lent to a guest call, Borrow/ReturnBorrow bracket the
// call; Remove refuses a handle with outstanding borrows.
//
// # Observers
//
// Register observers to track handle lifecycle events:
//
//	tbl.Subscribe(obs) // obs.OnHandleEvent is called for insert/remove/borrow
//
// # Memory Management
//
// Handles are not garbage collected. The host must Remove a handle when the
// guest drops it; until then the table keeps the Ref, and the storage behind
// it, alive. For pooled instances, Close releases everything at recycle time.
package table
