package domain

import "time"

// DefaultCrateCount is assumed when a capacity is recorded without an
// explicit crate count.
const DefaultCrateCount = 1

// Capacity is the number of crates present at a drop point from some point
// in time. Zero crates is valid: the drop point is only a sign on the wall.
type Capacity struct {
	// StartTime is when this crate count became effective.
	StartTime time.Time `json:"start_time"`
	// Crates is the number of crates present.
	Crates int `json:"crates"`
}

// EntryTime implements Entry.
func (c Capacity) EntryTime() time.Time { return c.StartTime }

// CapacityParams carries the caller-supplied fields for a new capacity.
// Nil pointers mean "unspecified".
type CapacityParams struct {
	StartTime *time.Time
	Crates    *int
}

// NewCapacity validates the parameters and builds a Capacity. StartTime
// defaults to now and must not be in the future; the crate count defaults
// to DefaultCrateCount and must not be negative.
func NewCapacity(p CapacityParams, now time.Time) (Capacity, error) {
	verr := &ValidationError{}

	c := Capacity{StartTime: now, Crates: DefaultCrateCount}

	if p.StartTime != nil {
		if p.StartTime.After(now) {
			verr.Add("capacity", "start time in the future")
		}
		c.StartTime = *p.StartTime
	}

	if p.Crates != nil {
		if *p.Crates < 0 {
			verr.Add("crates", "crate count is negative")
		}
		c.Crates = *p.Crates
	}

	if err := verr.OrNil(); err != nil {
		return Capacity{}, err
	}
	return c, nil
}
