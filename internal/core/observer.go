package core

import "github.com/google/uuid"

// observerBuffer bounds how far an observer may lag before delivery to it
// fails and it is evicted.
const observerBuffer = 16

// EventKind is a notification the hub emits to observers.
type EventKind int

const (
	// EventSnapshot carries the full room state after a mutation.
	EventSnapshot EventKind = iota
	// EventRoomDeleted is the terminal notice before observers are detached.
	EventRoomDeleted
)

// Event is delivered to room observers.
type Event struct {
	Kind     EventKind
	Room     string
	Snapshot *RoomSnapshot
}

// Observer is a live connection subscribed to one room's snapshots. The
// hub owns the Events channel and closes it on detach or eviction.
type Observer struct {
	ID     string
	Events chan Event
}

// NewObserver constructs an observer with a bounded event buffer.
func NewObserver() *Observer {
	return &Observer{
		ID:     uuid.NewString(),
		Events: make(chan Event, observerBuffer),
	}
}
