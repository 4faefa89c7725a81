// Package inbox provides the drain-once event queues sitting between the
// transport session (producer) and the floor view-model (consumer). Each
// event kind gets its own inbox; an event is read exactly once and the inbox
// is never a persistent log.
package inbox

import "sync"

// Inbox is a single-producer/single-consumer queue.
type Inbox[T any] struct {
	mu     sync.Mutex
	events []T
}

func New[T any]() *Inbox[T] {
	return &Inbox[T]{}
}

// Put appends an event.
func (in *Inbox[T]) Put(ev T) {
	in.mu.Lock()
	in.events = append(in.events, ev)
	in.mu.Unlock()
}

// Drain returns all pending events in arrival order and empties the inbox.
// Returns nil when there is nothing pending.
func (in *Inbox[T]) Drain() []T {
	in.mu.Lock()
	defer in.mu.Unlock()
	evs := in.events
	in.events = nil
	return evs
}

func (in *Inbox[T]) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.events)
}
