package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapacity(t *testing.T) {
	tests := []struct {
		name      string
		params    CapacityParams
		wantField string
		want      int
	}{
		{
			name:   "unspecified crates default to one",
			params: CapacityParams{},
			want:   DefaultCrateCount,
		},
		{
			name:   "zero crates is a sign-only point",
			params: CapacityParams{Crates: ptr(0)},
			want:   0,
		},
		{
			name:   "explicit count",
			params: CapacityParams{Crates: ptr(6)},
			want:   6,
		},
		{
			name:      "negative count",
			params:    CapacityParams{Crates: ptr(-1)},
			wantField: "crates",
		},
		{
			name:      "future start time",
			params:    CapacityParams{StartTime: ptr(baseTime.Add(time.Second))},
			wantField: "capacity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCapacity(tt.params, baseTime)

			if tt.wantField != "" {
				verr, ok := AsValidation(err)
				require.True(t, ok, "expected a validation error, got %v", err)
				assert.True(t, verr.HasField(tt.wantField))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Crates)
		})
	}
}

func TestNewCapacity_DefaultStartTime(t *testing.T) {
	c, err := NewCapacity(CapacityParams{}, baseTime)
	require.NoError(t, err)
	assert.Equal(t, baseTime, c.StartTime)
}
