package domain

import "time"

// VisitAction is the maintenance action taken by collection staff during a
// visit to a drop point.
type VisitAction string

const (
	VisitActionEmptied      VisitAction = "EMPTIED"
	VisitActionAddedCrate   VisitAction = "ADDED_CRATE"
	VisitActionRemovedCrate VisitAction = "REMOVED_CRATE"
	VisitActionRelocated    VisitAction = "RELOCATED"
	VisitActionRemoved      VisitAction = "REMOVED"
	VisitActionNoAction     VisitAction = "NO_ACTION"
)

// Valid reports whether a is one of the known maintenance actions.
func (a VisitAction) Valid() bool {
	switch a {
	case VisitActionEmptied, VisitActionAddedCrate, VisitActionRemovedCrate,
		VisitActionRelocated, VisitActionRemoved, VisitActionNoAction:
		return true
	}
	return false
}

// Visit is a logged maintenance visit at a drop point. Visits are immutable
// and never deleted.
type Visit struct {
	// Time is when the visit took place.
	Time time.Time `json:"time"`
	// Action is the maintenance action taken.
	Action VisitAction `json:"action"`
}

// EntryTime implements Entry.
func (v Visit) EntryTime() time.Time { return v.Time }

// NewVisit validates and builds a Visit. The time defaults to now and must
// not be in the future; the action must be one of the fixed enumeration.
func NewVisit(action VisitAction, at *time.Time, now time.Time) (Visit, error) {
	verr := &ValidationError{}

	vis := Visit{Time: now, Action: action}

	if at != nil {
		if at.After(now) {
			verr.Add("visit", "visit time in the future")
		}
		vis.Time = *at
	}

	if !action.Valid() {
		verr.Add("action", "invalid or missing maintenance action")
	}

	if err := verr.OrNil(); err != nil {
		return Visit{}, err
	}
	return vis, nil
}
