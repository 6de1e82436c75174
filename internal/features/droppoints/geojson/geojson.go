// Package geojson renders drop points as a GeoJSON feature collection for
// map frontends. It only consumes the core's read accessors; the core does
// no serialization itself.
package geojson

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"droppoint-tracker/internal/features/droppoints/domain"
)

// FeatureCollection builds one feature per drop point with a Point geometry
// from its current location. Drop points whose location has no coordinates
// are skipped: they exist somewhere in the venue but cannot be placed on a
// map.
func FeatureCollection(points []*domain.DropPoint, engine *domain.PriorityEngine) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, dp := range points {
		loc, ok := dp.CurrentLocation()
		if !ok || !loc.HasCoords {
			continue
		}

		f := geojson.NewFeature(orb.Point{loc.Lng, loc.Lat})
		f.ID = dp.Number()
		f.Properties = geojson.Properties{
			"number":        dp.Number(),
			"description":   loc.Description,
			"reports_total": dp.TotalReportCount(),
			"reports_new":   dp.NewReportCount(),
			"priority":      engine.Score(dp),
			"last_state":    string(dp.LastState()),
			"crates":        dp.CurrentCrateCount(),
			"removed":       dp.IsRemoved(),
		}
		fc.Append(f)
	}

	return fc
}
