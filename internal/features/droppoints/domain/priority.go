package domain

import (
	"math"

	"droppoint-tracker/internal/core/clock"
)

const (
	// crateBoostPerCrate raises urgency proportionally to the number of
	// crates at a flagged point.
	crateBoostPerCrate = 0.1
	// neverVisitedBoost replaces the time-decay factor for points that
	// have never been visited.
	neverVisitedBoost = 3.0
)

// WeightContext carries optional reporter and viewer metadata for report
// weighting. Weighting must stay a pure function of the report and this
// context, never of global mutable state.
type WeightContext struct {
	// TrustedReporter marks reports from trusted users.
	TrustedReporter bool
	// ViewerRole is the role of whoever the priority is computed for.
	ViewerRole string
}

// ReportWeightFunc scores the significance of a single report for priority
// computation. ctx may be nil.
type ReportWeightFunc func(r Report, ctx *WeightContext) float64

// DefaultReportWeight weighs every report equally.
//
// TODO: weight should depend on the report state (OVERFLOW > FULL > rest),
// on reporter trust and on the viewer role once those are modelled.
func DefaultReportWeight(Report, *WeightContext) float64 { return 1 }

// PriorityEngine computes the urgency of visiting a drop point. Scores are
// deterministic, re-derivable at any instant from history alone, and
// comparable across all drop points.
type PriorityEngine struct {
	clk   clock.Clock
	weigh ReportWeightFunc
}

// NewPriorityEngine creates a PriorityEngine. A nil weigh function falls
// back to DefaultReportWeight.
func NewPriorityEngine(clk clock.Clock, weigh ReportWeightFunc) *PriorityEngine {
	if weigh == nil {
		weigh = DefaultReportWeight
	}
	return &PriorityEngine{clk: clk, weigh: weigh}
}

// Score computes the visit priority of a drop point without reporter or
// viewer context.
func (e *PriorityEngine) Score(dp *DropPoint) float64 {
	return e.ScoreFor(dp, nil)
}

// ScoreFor computes the visit priority of a drop point, higher meaning more
// urgent:
//
//   - a removed drop point always scores exactly 0
//   - the base priority of 1 ensures slow growth even with no reports, so
//     every point eventually surfaces
//   - each report since the last visit adds its weight
//   - a point with crates gets a boost proportional to the crate count; a
//     sign-only point cannot be overfull and gets none
//   - the total grows linearly with time since the last visit relative to
//     the point's visit interval; never-visited points get a fixed boost
//     instead
//
// The result is rounded to 2 decimal places.
func (e *PriorityEngine) ScoreFor(dp *DropPoint, ctx *WeightContext) float64 {
	if dp.IsRemoved() {
		return 0
	}

	priority := 1.0
	for _, rep := range dp.NewReports() {
		priority += e.weigh(rep, ctx)
	}

	if crates := dp.CurrentCrateCount(); crates >= 1 {
		priority *= 1 + crateBoostPerCrate*float64(crates)
	}

	if lastVisit, ok := dp.LastVisit(); ok {
		elapsed := e.clk.Now().Sub(lastVisit.Time)
		priority *= elapsed.Seconds() / dp.VisitInterval().Seconds()
	} else {
		priority *= neverVisitedBoost
	}

	return math.Round(priority*100) / 100
}
