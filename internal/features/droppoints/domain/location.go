package domain

import "time"

// MaxDescriptionLen bounds the human-readable location description.
const MaxDescriptionLen = 140

// Location is one placement of a drop point's sign at some point in time.
// A location with no description and no coordinates is valid and means the
// drop point exists somewhere but its placement is unrecorded.
type Location struct {
	// StartTime is when the drop point was placed at this location.
	StartTime time.Time `json:"start_time"`
	// Description is an optional human-readable placement hint.
	Description string `json:"description,omitempty"`
	// Lat is the latitude in degrees, meaningful only when HasCoords is true.
	Lat float64 `json:"lat"`
	// Lng is the longitude in degrees, meaningful only when HasCoords is true.
	Lng float64 `json:"lng"`
	// HasCoords reports whether coordinates were recorded.
	HasCoords bool `json:"has_coords"`
	// Level is an optional building floor indicator.
	Level int `json:"level"`
	// HasLevel reports whether a level was recorded.
	HasLevel bool `json:"has_level"`
}

// EntryTime implements Entry.
func (l Location) EntryTime() time.Time { return l.StartTime }

// Unknown reports whether this location carries no placement information.
func (l Location) Unknown() bool {
	return l.Description == "" && !l.HasCoords
}

// LocationParams carries the caller-supplied fields for a new location.
// Nil pointers mean "unspecified".
type LocationParams struct {
	StartTime   *time.Time
	Description string
	Lat         *float64
	Lng         *float64
	Level       *int
}

// NewLocation validates the parameters and builds a Location. StartTime
// defaults to now and must not be in the future. Coordinates are optional
// but must be supplied as a pair, with lat strictly between -90 and 90 and
// lng strictly between -180 and 180. All violations are aggregated into a
// single ValidationError.
func NewLocation(p LocationParams, now time.Time) (Location, error) {
	verr := &ValidationError{}

	loc := Location{StartTime: now, Description: p.Description}

	if p.StartTime != nil {
		if p.StartTime.After(now) {
			verr.Add("location", "start time in the future")
		}
		loc.StartTime = *p.StartTime
	}

	if len(p.Description) > MaxDescriptionLen {
		verr.Add("description", "location description is too long")
	}

	switch {
	case p.Lat != nil && p.Lng != nil:
		if *p.Lat <= -90 || *p.Lat >= 90 {
			verr.Add("lat", "latitude is not between 90 degrees N/S")
		}
		if *p.Lng <= -180 || *p.Lng >= 180 {
			verr.Add("lng", "longitude is not between 180 degrees W/E")
		}
		loc.Lat, loc.Lng, loc.HasCoords = *p.Lat, *p.Lng, true
	case p.Lat != nil:
		verr.Add("lng", "longitude is missing")
	case p.Lng != nil:
		verr.Add("lat", "latitude is missing")
	}

	if p.Level != nil {
		loc.Level, loc.HasLevel = *p.Level, true
	}

	if err := verr.OrNil(); err != nil {
		return Location{}, err
	}
	return loc, nil
}
