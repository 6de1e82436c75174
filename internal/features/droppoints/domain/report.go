package domain

import "time"

// ReportState is the fill state of a drop point as seen by a reporter.
type ReportState string

const (
	ReportStateDefault        ReportState = "DEFAULT"
	ReportStateNoCrates       ReportState = "NO_CRATES"
	ReportStateEmpty          ReportState = "EMPTY"
	ReportStateSomeBottles    ReportState = "SOME_BOTTLES"
	ReportStateReasonablyFull ReportState = "REASONABLY_FULL"
	ReportStateFull           ReportState = "FULL"
	ReportStateOverflow       ReportState = "OVERFLOW"

	// ReportStateUnknown is never stored in a report; it is the resolved
	// state of a drop point that has no reports at all.
	ReportStateUnknown ReportState = "UNKNOWN"
)

// Valid reports whether s is one of the storable report states.
func (s ReportState) Valid() bool {
	switch s {
	case ReportStateDefault, ReportStateNoCrates, ReportStateEmpty,
		ReportStateSomeBottles, ReportStateReasonablyFull,
		ReportStateFull, ReportStateOverflow:
		return true
	}
	return false
}

// Report is a visitor-submitted observation of a drop point's fill state.
// Reports are immutable and never deleted.
type Report struct {
	// Time is when the observation was made.
	Time time.Time `json:"time"`
	// State is the observed fill state.
	State ReportState `json:"state"`
}

// EntryTime implements Entry.
func (r Report) EntryTime() time.Time { return r.Time }

// NewReport validates and builds a Report. The time defaults to now and must
// not be in the future; the state must be one of the fixed enumeration.
func NewReport(state ReportState, at *time.Time, now time.Time) (Report, error) {
	verr := &ValidationError{}

	rep := Report{Time: now, State: state}

	if at != nil {
		if at.After(now) {
			verr.Add("report", "report time in the future")
		}
		rep.Time = *at
	}

	if !state.Valid() {
		verr.Add("state", "invalid or missing reported state")
	}

	if err := verr.OrNil(); err != nil {
		return Report{}, err
	}
	return rep, nil
}
