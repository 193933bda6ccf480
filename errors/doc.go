// Package errors defines the structured error type used across hostref.
//
// Every failure in this library is local and synchronous: an operation either
// succeeds immediately or fails immediately. The taxonomy is deliberately
// small:
//
//	borrow_conflict - requested access conflicts with an outstanding loan
//	type_mismatch   - a downcast or payload access named the wrong type
//	null_ref        - an operation needing a referent was given a null ref
//
// All three signal contract violations by the caller. They are never retried
// internally and never resolve on their own; the caller must release the
// conflicting borrow, ask for the right type, or check for null first.
//
// Match errors by kind with the exported sentinels:
//
//	if errors.Is(err, hosterrors.ErrBorrowConflict) {
//	    ...
//	}
package errors
