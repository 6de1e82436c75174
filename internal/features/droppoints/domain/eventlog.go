package domain

import "time"

// EventLog is an append-only, time-ordered record of domain events (reports
// or visits) for one drop point. Unlike a Timeline it has no "current value"
// semantics and accepts events dated before existing ones; the log keeps
// itself ordered by event time.
type EventLog[T Entry] struct {
	events []T
}

// NewEventLog creates an empty log.
func NewEventLog[T Entry]() *EventLog[T] {
	return &EventLog[T]{}
}

// Append inserts the event at its position in time order. Events with equal
// times keep insertion order. Event validation (future times, enum values)
// belongs to the event constructors.
func (l *EventLog[T]) Append(e T) {
	i := len(l.events)
	for i > 0 && l.events[i-1].EntryTime().After(e.EntryTime()) {
		i--
	}
	l.events = append(l.events, e)
	copy(l.events[i+1:], l.events[i:])
	l.events[i] = e
}

// All returns a copy of the full log in ascending time order.
func (l *EventLog[T]) All() []T {
	out := make([]T, len(l.events))
	copy(out, l.events)
	return out
}

// After returns the events strictly newer than cutoff, newest first. The
// result is re-derived from the current log on every call.
func (l *EventLog[T]) After(cutoff time.Time) []T {
	var out []T
	for i := len(l.events) - 1; i >= 0; i-- {
		if !l.events[i].EntryTime().After(cutoff) {
			break
		}
		out = append(out, l.events[i])
	}
	return out
}

// Count returns the number of logged events.
func (l *EventLog[T]) Count() int { return len(l.events) }

// Latest returns the most recent event by time, or false if the log is empty.
func (l *EventLog[T]) Latest() (T, bool) {
	if len(l.events) == 0 {
		var zero T
		return zero, false
	}
	return l.events[len(l.events)-1], true
}
