package domain

import (
	"sort"
	"sync"
	"time"

	"droppoint-tracker/internal/core/clock"
)

// Registry owns the set of all drop points and enforces global uniqueness
// of their numbers. The uniqueness check and the insertion happen under one
// lock: two concurrent creations with the same number yield exactly one
// live drop point and one ValidationError.
type Registry struct {
	mu     sync.RWMutex
	points map[int]*DropPoint

	clk                  clock.Clock
	defaultVisitInterval time.Duration
}

// NewRegistry creates an empty Registry. defaultVisitInterval applies to
// every created drop point; non-positive falls back to
// DefaultVisitInterval.
func NewRegistry(clk clock.Clock, defaultVisitInterval time.Duration) *Registry {
	if defaultVisitInterval <= 0 {
		defaultVisitInterval = DefaultVisitInterval
	}
	return &Registry{
		points:               make(map[int]*DropPoint),
		clk:                  clk,
		defaultVisitInterval: defaultVisitInterval,
	}
}

// Create validates the parameters, constructs a drop point with its initial
// location and capacity, and indexes it. The whole creation is atomic: if
// the number is taken or any field is invalid, nothing is registered and
// all failures come back in one ValidationError. A duplicate number is
// reported alongside the other field errors, the same way a caller would
// want to show them in one round trip.
func (r *Registry) Create(p DropPointParams) (*DropPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	verr := &ValidationError{}
	if _, exists := r.points[p.Number]; exists {
		verr.Add("number", "that drop point already exists")
	}

	dp, err := newDropPoint(p, r.clk, r.defaultVisitInterval)
	verr.Merge(err)

	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	r.points[p.Number] = dp
	return dp, nil
}

// Restore indexes an already-built drop point, typically rebuilt from the
// storage backend at startup. Like Create it is an atomic check-and-insert.
func (r *Registry) Restore(dp *DropPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.points[dp.Number()]; exists {
		verr := &ValidationError{}
		verr.Add("number", "that drop point already exists")
		return verr
	}
	r.points[dp.Number()] = dp
	return nil
}

// RestoreSnapshot rebuilds a drop point from a persisted snapshot using the
// registry's clock and indexes it.
func (r *Registry) RestoreSnapshot(s Snapshot) error {
	return r.Restore(RestoreDropPoint(s, r.clk))
}

// Discard drops a freshly created drop point from the index again. It
// exists so a creation whose persistence failed leaves no partial record;
// established drop points are only ever removed logically via Remove.
func (r *Registry) Discard(number int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.points, number)
}

// Get returns the drop point with the given number, or false if there is
// none. Lookups never fail with an error.
func (r *Registry) Get(number int) (*DropPoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dp, ok := r.points[number]
	return dp, ok
}

// All returns every drop point, removed ones included, ordered by number.
// Callers filter as needed.
func (r *Registry) All() []*DropPoint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*DropPoint, 0, len(r.points))
	for _, dp := range r.points {
		out = append(out, dp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number() < out[j].Number() })
	return out
}

// Count returns the number of registered drop points.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.points)
}
