// Package geo handles geographic data structures and coordinate math for
// the zone pipeline.
package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Centroid returns a representative point for an areal geometry: the first
// vertex of the outer ring (Polygon), or of the first polygon's outer ring
// (MultiPolygon). It is an approximation, not a geometric centroid; callers
// must not assume centrality. Returns false for empty, malformed or
// non-areal geometry.
func Centroid(g orb.Geometry) (LatLng, bool) {
	switch geom := g.(type) {
	case orb.Polygon:
		return firstVertex(geom)
	case orb.MultiPolygon:
		if len(geom) == 0 {
			return LatLng{}, false
		}
		return firstVertex(geom[0])
	default:
		return LatLng{}, false
	}
}

func firstVertex(p orb.Polygon) (LatLng, bool) {
	if len(p) == 0 || len(p[0]) == 0 {
		return LatLng{}, false
	}
	v := p[0][0]
	return LatLng{Lat: v.Lat(), Lng: v.Lon()}, true
}

// PadBound returns the geometry's bounding box expanded outward by the given
// distance in meters, used as a tolerance region for proximity testing.
func PadBound(g orb.Geometry, meters float64) orb.Bound {
	return orbgeo.BoundPad(g.Bound(), meters)
}

// PadBoundBox expands an existing bound by the given distance in meters.
func PadBoundBox(b orb.Bound, meters float64) orb.Bound {
	return orbgeo.BoundPad(b, meters)
}

// BoundsIntersect reports whether two tolerance regions share at least one
// point.
func BoundsIntersect(a, b orb.Bound) bool {
	return a.Intersects(b)
}
