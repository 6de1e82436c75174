package domain

import (
	"fmt"
	"sync"
	"time"

	"droppoint-tracker/internal/core/clock"
)

// DefaultVisitInterval is the target interval between maintenance visits
// used for priority decay when no per-point interval is configured.
const DefaultVisitInterval = 2 * time.Hour

// DropPoint is a numbered collection point at the venue: a sign on the wall
// plus zero or more crates. Its location and capacity are tracked as
// append-only timelines because both change over the course of an event;
// reports and visits are tracked as append-only logs. Numbers are never
// reassigned, a removed drop point stays queryable forever.
type DropPoint struct {
	mu sync.RWMutex

	number        int
	removedAt     *time.Time
	visitInterval time.Duration

	locations  *Timeline[Location]
	capacities *Timeline[Capacity]
	reports    *EventLog[Report]
	visits     *EventLog[Visit]

	clk clock.Clock
}

// DropPointParams carries the caller-supplied fields for creating a drop
// point with its initial location and capacity. Nil pointers mean
// "unspecified".
type DropPointParams struct {
	Number      int
	Description string
	Lat         *float64
	Lng         *float64
	Level       *int
	Crates      *int
	StartTime   *time.Time
}

// newDropPoint validates the whole parameter set and builds the aggregate
// with its initial location and capacity entries. Every validation failure
// across number, location and capacity is collected into one
// ValidationError; on error nothing is constructed. Uniqueness of the
// number is the Registry's concern.
func newDropPoint(p DropPointParams, clk clock.Clock, visitInterval time.Duration) (*DropPoint, error) {
	verr := &ValidationError{}
	now := clk.Now()

	if p.Number < 1 {
		verr.Add("number", "drop point number is not positive")
	}

	loc, err := NewLocation(LocationParams{
		StartTime:   p.StartTime,
		Description: p.Description,
		Lat:         p.Lat,
		Lng:         p.Lng,
		Level:       p.Level,
	}, now)
	verr.Merge(err)

	capacity, err := NewCapacity(CapacityParams{
		StartTime: p.StartTime,
		Crates:    p.Crates,
	}, now)
	verr.Merge(err)

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if visitInterval <= 0 {
		visitInterval = DefaultVisitInterval
	}

	dp := &DropPoint{
		number:        p.Number,
		visitInterval: visitInterval,
		locations:     NewTimeline[Location]("location"),
		capacities:    NewTimeline[Capacity]("capacity"),
		reports:       NewEventLog[Report](),
		visits:        NewEventLog[Visit](),
		clk:           clk,
	}
	// Initial entries were validated above against the same now.
	dp.locations.Append(loc, now)
	dp.capacities.Append(capacity, now)
	return dp, nil
}

// Number returns the immutable drop point number.
func (dp *DropPoint) Number() int { return dp.number }

// RemovedAt returns the removal time, or false if the drop point is active.
func (dp *DropPoint) RemovedAt() (time.Time, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	if dp.removedAt == nil {
		return time.Time{}, false
	}
	return *dp.removedAt, true
}

// IsRemoved reports whether the drop point has been removed from the venue.
func (dp *DropPoint) IsRemoved() bool {
	_, removed := dp.RemovedAt()
	return removed
}

// Remove marks the drop point as removed from the venue. A nil time means
// now; the time must not be in the future. Removal is permanent: a second
// call always fails with a StateError.
func (dp *DropPoint) Remove(at *time.Time) error {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	if dp.removedAt != nil {
		return &StateError{Message: "drop point already removed"}
	}

	now := dp.clk.Now()
	t := now
	if at != nil {
		if at.After(now) {
			verr := &ValidationError{}
			verr.Add("removed", "removal time in the future")
			return verr
		}
		t = *at
	}
	dp.removedAt = &t
	return nil
}

// Report logs a visitor observation against this drop point.
func (dp *DropPoint) Report(state ReportState, at *time.Time) error {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	rep, err := NewReport(state, at, dp.clk.Now())
	if err != nil {
		return err
	}
	dp.reports.Append(rep)
	return nil
}

// Visit logs a maintenance visit against this drop point.
func (dp *DropPoint) Visit(action VisitAction, at *time.Time) error {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	vis, err := NewVisit(action, at, dp.clk.Now())
	if err != nil {
		return err
	}
	dp.visits.Append(vis)
	return nil
}

// Relocate appends a new location to the timeline. The new entry's start
// time must not precede the current location's.
func (dp *DropPoint) Relocate(p LocationParams) error {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	now := dp.clk.Now()
	loc, err := NewLocation(p, now)
	if err != nil {
		return err
	}
	return dp.locations.Append(loc, now)
}

// ChangeCapacity appends a new crate count to the timeline. The new entry's
// start time must not precede the current capacity's.
func (dp *DropPoint) ChangeCapacity(p CapacityParams) error {
	dp.mu.Lock()
	defer dp.mu.Unlock()

	now := dp.clk.Now()
	c, err := NewCapacity(p, now)
	if err != nil {
		return err
	}
	return dp.capacities.Append(c, now)
}

// CurrentLocation returns the latest location, or false if none is recorded.
func (dp *DropPoint) CurrentLocation() (Location, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	return dp.locations.Current()
}

// CurrentCrateCount returns the latest crate count, or 0 if the capacity
// timeline is empty.
func (dp *DropPoint) CurrentCrateCount() int {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	if c, ok := dp.capacities.Current(); ok {
		return c.Crates
	}
	return 0
}

// Locations returns the full location history in insertion order.
func (dp *DropPoint) Locations() []Location {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	return dp.locations.All()
}

// Capacities returns the full capacity history in insertion order.
func (dp *DropPoint) Capacities() []Capacity {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	return dp.capacities.All()
}

// Reports returns the full report log, oldest first.
func (dp *DropPoint) Reports() []Report {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	return dp.reports.All()
}

// Visits returns the full visit log, oldest first.
func (dp *DropPoint) Visits() []Visit {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	return dp.visits.All()
}

// TotalReportCount returns the number of reports ever logged.
func (dp *DropPoint) TotalReportCount() int {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	return dp.reports.Count()
}

// LastReport returns the most recent report, or false if none exists.
func (dp *DropPoint) LastReport() (Report, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	return dp.reports.Latest()
}

// LastVisit returns the most recent visit, or false if none exists.
func (dp *DropPoint) LastVisit() (Visit, bool) {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	return dp.visits.Latest()
}

// NewReports returns the reports strictly newer than the last visit, newest
// first. If the drop point has never been visited, all reports are new.
func (dp *DropPoint) NewReports() []Report {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	if lastVisit, ok := dp.visits.Latest(); ok {
		return dp.reports.After(lastVisit.Time)
	}
	out := dp.reports.All()
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// NewReportCount returns the number of reports strictly newer than the last
// visit, or the total report count if never visited.
func (dp *DropPoint) NewReportCount() int {
	return len(dp.NewReports())
}

// LastState derives the current perceived fill state from the report and
// visit logs.
func (dp *DropPoint) LastState() ReportState {
	dp.mu.RLock()
	defer dp.mu.RUnlock()

	var lastReport *Report
	if r, ok := dp.reports.Latest(); ok {
		lastReport = &r
	}
	var lastVisit *Visit
	if v, ok := dp.visits.Latest(); ok {
		lastVisit = &v
	}
	return ResolveState(lastReport, lastVisit)
}

// VisitInterval returns the target interval between visits for this drop
// point. Kept as a method rather than a constant: the interval may later
// depend on capacity, location or time of day.
func (dp *DropPoint) VisitInterval() time.Duration {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	return dp.visitInterval
}

// SetVisitInterval overrides the target visit interval for this drop point.
// Non-positive values are ignored.
func (dp *DropPoint) SetVisitInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.visitInterval = d
}

// String implements fmt.Stringer.
func (dp *DropPoint) String() string {
	status := "active"
	if dp.IsRemoved() {
		status = "inactive"
	}
	return fmt.Sprintf("drop point %d (%s)", dp.number, status)
}
