package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logWithReports(times ...time.Time) *EventLog[Report] {
	l := NewEventLog[Report]()
	for _, at := range times {
		l.Append(Report{Time: at, State: ReportStateFull})
	}
	return l
}

func TestEventLog_AllAscending(t *testing.T) {
	// Appended out of order on purpose; the log keeps time order.
	l := logWithReports(
		baseTime.Add(-1*time.Hour),
		baseTime.Add(-3*time.Hour),
		baseTime.Add(-2*time.Hour),
	)

	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, baseTime.Add(-3*time.Hour), all[0].Time)
	assert.Equal(t, baseTime.Add(-2*time.Hour), all[1].Time)
	assert.Equal(t, baseTime.Add(-1*time.Hour), all[2].Time)
}

func TestEventLog_AfterStrictlyNewerDescending(t *testing.T) {
	l := logWithReports(
		baseTime.Add(-3*time.Hour),
		baseTime.Add(-2*time.Hour),
		baseTime.Add(-1*time.Hour),
	)

	cutoff := baseTime.Add(-2 * time.Hour)
	newer := l.After(cutoff)

	// Strictly newer than the cutoff, newest first.
	require.Len(t, newer, 1)
	assert.Equal(t, baseTime.Add(-1*time.Hour), newer[0].Time)
}

func TestEventLog_AfterIsRederived(t *testing.T) {
	l := logWithReports(baseTime.Add(-2 * time.Hour))
	cutoff := baseTime.Add(-3 * time.Hour)

	assert.Len(t, l.After(cutoff), 1)

	l.Append(Report{Time: baseTime.Add(-1 * time.Hour), State: ReportStateOverflow})
	assert.Len(t, l.After(cutoff), 2, "a later call sees the new event")
}

func TestEventLog_CountAndLatest(t *testing.T) {
	l := NewEventLog[Visit]()

	assert.Equal(t, 0, l.Count())
	_, ok := l.Latest()
	assert.False(t, ok)

	l.Append(Visit{Time: baseTime.Add(-2 * time.Hour), Action: VisitActionNoAction})
	l.Append(Visit{Time: baseTime.Add(-1 * time.Hour), Action: VisitActionEmptied})

	assert.Equal(t, 2, l.Count())
	latest, ok := l.Latest()
	require.True(t, ok)
	assert.Equal(t, VisitActionEmptied, latest.Action)
}

func TestEventLog_AfterEmpty(t *testing.T) {
	l := NewEventLog[Report]()
	assert.Empty(t, l.After(baseTime))
}
