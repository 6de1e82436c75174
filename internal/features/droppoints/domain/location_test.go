package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	tests := []struct {
		name       string
		params     LocationParams
		wantFields []string
	}{
		{
			name: "valid full location",
			params: LocationParams{
				Description: "hall 3, west wall",
				Lat:         ptr(53.56),
				Lng:         ptr(9.98),
				Level:       ptr(1),
			},
		},
		{
			name:   "unknown location is constructible",
			params: LocationParams{},
		},
		{
			name: "latitude out of range",
			params: LocationParams{
				Lat: ptr(95.0),
				Lng: ptr(9.98),
			},
			wantFields: []string{"lat"},
		},
		{
			name: "longitude out of range",
			params: LocationParams{
				Lat: ptr(45.0),
				Lng: ptr(200.0),
			},
			wantFields: []string{"lng"},
		},
		{
			name: "boundary latitude is rejected",
			params: LocationParams{
				Lat: ptr(90.0),
				Lng: ptr(0.0),
			},
			wantFields: []string{"lat"},
		},
		{
			name: "latitude without longitude",
			params: LocationParams{
				Lat: ptr(53.56),
			},
			wantFields: []string{"lng"},
		},
		{
			name: "longitude without latitude",
			params: LocationParams{
				Lng: ptr(9.98),
			},
			wantFields: []string{"lat"},
		},
		{
			name: "description too long",
			params: LocationParams{
				Description: strings.Repeat("x", MaxDescriptionLen+1),
			},
			wantFields: []string{"description"},
		},
		{
			name: "future start time",
			params: LocationParams{
				StartTime: ptr(baseTime.Add(time.Minute)),
			},
			wantFields: []string{"location"},
		},
		{
			name: "both coordinates invalid",
			params: LocationParams{
				Lat: ptr(95.0),
				Lng: ptr(200.0),
			},
			wantFields: []string{"lat", "lng"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := NewLocation(tt.params, baseTime)

			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}

			verr, ok := AsValidation(err)
			require.True(t, ok, "expected a validation error, got %v", err)
			for _, field := range tt.wantFields {
				assert.True(t, verr.HasField(field), "missing error for field %q", field)
			}
			assert.Zero(t, loc)
		})
	}
}

func TestNewLocation_Defaults(t *testing.T) {
	loc, err := NewLocation(LocationParams{}, baseTime)
	require.NoError(t, err)

	assert.Equal(t, baseTime, loc.StartTime, "start time defaults to now")
	assert.False(t, loc.HasCoords)
	assert.False(t, loc.HasLevel)
	assert.True(t, loc.Unknown())
}

func TestNewLocation_ExplicitStartTime(t *testing.T) {
	at := baseTime.Add(-time.Hour)
	loc, err := NewLocation(LocationParams{StartTime: &at}, baseTime)
	require.NoError(t, err)
	assert.Equal(t, at, loc.StartTime)
}
