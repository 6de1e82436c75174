package domain

import (
	"time"

	"droppoint-tracker/internal/core/clock"
)

// baseTime is the pinned "now" used across the domain tests.
var baseTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func testClock() *clock.Fixed {
	return clock.NewFixed(baseTime)
}

// testRegistry returns a registry pinned to baseTime with the default visit
// interval.
func testRegistry() (*Registry, *clock.Fixed) {
	clk := testClock()
	return NewRegistry(clk, 0), clk
}

// validParams returns creation parameters that pass every check.
func validParams(number int) DropPointParams {
	return DropPointParams{
		Number:      number,
		Description: "north entrance, next to the info desk",
		Lat:         ptr(53.561), // Lat/Lng roughly CCH Hamburg
		Lng:         ptr(9.985),
		Level:       ptr(2),
		Crates:      ptr(3),
	}
}
