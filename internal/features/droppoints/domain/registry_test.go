package domain

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateAndGet(t *testing.T) {
	registry, _ := testRegistry()

	dp, err := registry.Create(validParams(1))
	require.NoError(t, err)

	got, ok := registry.Get(1)
	require.True(t, ok)
	assert.Same(t, dp, got)

	_, ok = registry.Get(42)
	assert.False(t, ok, "missing numbers are an absence, not an error")
}

func TestRegistry_DistinctNumbersBothSucceed(t *testing.T) {
	registry, _ := testRegistry()

	_, err := registry.Create(validParams(1))
	require.NoError(t, err)
	_, err = registry.Create(validParams(2))
	require.NoError(t, err)

	assert.Equal(t, 2, registry.Count())
}

func TestRegistry_DuplicateNumberFails(t *testing.T) {
	registry, _ := testRegistry()

	_, err := registry.Create(validParams(1))
	require.NoError(t, err)

	_, err = registry.Create(validParams(1))
	verr, ok := AsValidation(err)
	require.True(t, ok)
	assert.True(t, verr.HasField("number"))
	assert.Equal(t, 1, registry.Count())
}

// TestRegistry_ConcurrentDuplicateCreation races many goroutines on one
// number: exactly one creation may win.
func TestRegistry_ConcurrentDuplicateCreation(t *testing.T) {
	registry, _ := testRegistry()

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := registry.Create(validParams(7))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, failures int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		_, ok := AsValidation(err)
		assert.True(t, ok)
		failures++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, failures)
	assert.Equal(t, 1, registry.Count())
}

func TestRegistry_AllIncludesRemovedOrderedByNumber(t *testing.T) {
	registry, _ := testRegistry()

	for _, n := range []int{3, 1, 2} {
		_, err := registry.Create(validParams(n))
		require.NoError(t, err)
	}

	dp, _ := registry.Get(2)
	require.NoError(t, dp.Remove(nil))

	all := registry.All()
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[0].Number())
	assert.Equal(t, 2, all[1].Number())
	assert.Equal(t, 3, all[2].Number())
	assert.True(t, all[1].IsRemoved(), "removed points stay listed")
}

func TestRegistry_Discard(t *testing.T) {
	registry, _ := testRegistry()

	_, err := registry.Create(validParams(1))
	require.NoError(t, err)

	registry.Discard(1)
	_, ok := registry.Get(1)
	assert.False(t, ok)

	// The number can be taken again after a discarded creation.
	_, err = registry.Create(validParams(1))
	assert.NoError(t, err)
}

func TestRegistry_RestoreSnapshot(t *testing.T) {
	registry, _ := testRegistry()

	snap := Snapshot{
		Number:               5,
		VisitIntervalSeconds: 3600,
		Locations:            []Location{{StartTime: baseTime.Add(-24 * time.Hour), Description: "old hall"}},
		Capacities:           []Capacity{{StartTime: baseTime.Add(-24 * time.Hour), Crates: 2}},
		Reports:              []Report{{Time: baseTime.Add(-2 * time.Hour), State: ReportStateFull}},
		Visits:               []Visit{{Time: baseTime.Add(-3 * time.Hour), Action: VisitActionEmptied}},
	}
	require.NoError(t, registry.RestoreSnapshot(snap))

	dp, ok := registry.Get(5)
	require.True(t, ok)
	assert.Equal(t, 2, dp.CurrentCrateCount())
	assert.Equal(t, time.Hour, dp.VisitInterval())
	assert.Equal(t, 1, dp.NewReportCount())

	// Restoring the same number twice is a duplicate.
	err := registry.RestoreSnapshot(snap)
	_, isValidation := AsValidation(err)
	assert.True(t, isValidation)
}
