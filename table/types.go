package table

import "github.com/wippyai/hostref"

// Handle is a guest-visible index for a Ref. Handle 0 is reserved for the
// null ref.
type Handle uint32

// NullHandle is the handle every null Ref maps to.
const NullHandle Handle = 0

// Event types for handle lifecycle notifications.
type EventType uint8

const (
	EventInserted EventType = iota
	EventRemoved
	EventBorrowed
	EventBorrowReturned
)

// Event represents a handle lifecycle event.
type Event struct {
	Ref    hostref.Ref
	Handle Handle
	Type   EventType
}

// Observer receives notifications about handle lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}
