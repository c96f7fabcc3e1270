package source

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/hondenkaart/zonemap/internal/zone"
)

// Export converts a processed zone list back into a GeoJSON
// FeatureCollection for map and list consumers. AREA zones keep their
// polygon, POINT zones become point features at their centroid.
func Export(zones []*zone.Zone) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, z := range zones {
		var f *geojson.Feature
		if z.Geometry != nil {
			f = geojson.NewFeature(z.Geometry)
		} else {
			f = geojson.NewFeature(orb.Point{z.Centroid.Lng, z.Centroid.Lat})
		}

		f.ID = z.ID
		f.Properties = geojson.Properties{
			"id":       z.ID,
			"category": string(z.Category),
			"kind":     string(z.Kind),
		}
		if z.Kind == zone.KindArea {
			f.Properties["area_m2"] = z.AreaM2
		}
		if z.Merged {
			f.Properties["merged"] = true
			f.Properties["merged_count"] = z.MergedCount
		}
		if z.DistanceKm != nil {
			f.Properties["distance_km"] = *z.DistanceKm
		}

		fc.Append(f)
	}

	return fc
}
