package domain

import "time"

// Entry is implemented by anything stored in a Timeline or EventLog and
// carrying its own timestamp.
type Entry interface {
	EntryTime() time.Time
}

// Timeline is an append-only version history for one mutable attribute of a
// drop point (its location or its capacity), ordered by entry time. History
// is permanent: there is no update or delete, a correction is a newer entry.
type Timeline[T Entry] struct {
	attr    string
	entries []T
}

// NewTimeline creates an empty timeline. attr names the tracked attribute
// and is used as the field in validation errors.
func NewTimeline[T Entry](attr string) *Timeline[T] {
	return &Timeline[T]{attr: attr}
}

// Append adds a new entry at the end of the timeline. The entry time must
// not be in the future (relative to now) and must not precede the current
// last entry; out-of-order historical inserts are rejected, not reordered.
func (tl *Timeline[T]) Append(e T, now time.Time) error {
	verr := &ValidationError{}
	t := e.EntryTime()
	if t.After(now) {
		verr.Add(tl.attr, "start time in the future")
	}
	if last, ok := tl.Current(); ok && t.Before(last.EntryTime()) {
		verr.Add(tl.attr, tl.attr+" older than current")
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	tl.entries = append(tl.entries, e)
	return nil
}

// Current returns the latest entry, or false if the timeline is empty.
func (tl *Timeline[T]) Current() (T, bool) {
	if len(tl.entries) == 0 {
		var zero T
		return zero, false
	}
	return tl.entries[len(tl.entries)-1], true
}

// All returns a copy of the full history in insertion order.
func (tl *Timeline[T]) All() []T {
	out := make([]T, len(tl.entries))
	copy(out, tl.entries)
	return out
}

// Len returns the number of entries.
func (tl *Timeline[T]) Len() int { return len(tl.entries) }
