package domain

import (
	"time"

	"droppoint-tracker/internal/core/clock"
)

// Snapshot is the storage representation of a drop point and its full
// history. It exists so the storage backend can persist and restore
// aggregates without reaching into their internals.
type Snapshot struct {
	Number               int        `json:"number"`
	RemovedAt            *time.Time `json:"removed_at,omitempty"`
	VisitIntervalSeconds int        `json:"visit_interval_seconds"`
	Locations            []Location `json:"locations"`
	Capacities           []Capacity `json:"capacities"`
	Reports              []Report   `json:"reports"`
	Visits               []Visit    `json:"visits"`
}

// Snapshot captures the drop point's full state under one read lock.
func (dp *DropPoint) Snapshot() Snapshot {
	dp.mu.RLock()
	defer dp.mu.RUnlock()

	var removedAt *time.Time
	if dp.removedAt != nil {
		t := *dp.removedAt
		removedAt = &t
	}
	return Snapshot{
		Number:               dp.number,
		RemovedAt:            removedAt,
		VisitIntervalSeconds: int(dp.visitInterval.Seconds()),
		Locations:            dp.locations.All(),
		Capacities:           dp.capacities.All(),
		Reports:              dp.reports.All(),
		Visits:               dp.visits.All(),
	}
}

// RestoreDropPoint rebuilds an aggregate from a persisted snapshot. The
// snapshot is trusted: it was validated when the history was written, so
// entries are replayed without re-running the future-time checks that would
// reject honest historical data.
func RestoreDropPoint(s Snapshot, clk clock.Clock) *DropPoint {
	interval := time.Duration(s.VisitIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = DefaultVisitInterval
	}

	dp := &DropPoint{
		number:        s.Number,
		visitInterval: interval,
		locations:     NewTimeline[Location]("location"),
		capacities:    NewTimeline[Capacity]("capacity"),
		reports:       NewEventLog[Report](),
		visits:        NewEventLog[Visit](),
		clk:           clk,
	}
	if s.RemovedAt != nil {
		t := *s.RemovedAt
		dp.removedAt = &t
	}
	dp.locations.entries = append(dp.locations.entries, s.Locations...)
	dp.capacities.entries = append(dp.capacities.entries, s.Capacities...)
	for _, r := range s.Reports {
		dp.reports.Append(r)
	}
	for _, v := range s.Visits {
		dp.visits.Append(v)
	}
	return dp
}
