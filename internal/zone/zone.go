// Package zone implements the off-leash zone pipeline: classification of raw
// GeoJSON features, proximity merging of nearby same-category areas and
// nearest-zone ranking.
package zone

import (
	"github.com/paulmach/orb"

	"github.com/hondenkaart/zonemap/internal/geo"
)

// Category is the zone category code carried in the dataset's CODE property.
type Category string

// Only green and orange zones are processed, everything else is rejected.
const (
	CategoryGreen  Category = "GREEN"
	CategoryOrange Category = "ORANGE"
)

// ParseCategory maps a raw CODE value onto a known category.
func ParseCategory(code string) (Category, bool) {
	switch Category(code) {
	case CategoryGreen:
		return CategoryGreen, true
	case CategoryOrange:
		return CategoryOrange, true
	default:
		return "", false
	}
}

// Kind tells whether a zone carries a usable polygon area or degrades to a
// single representative point.
type Kind string

const (
	KindArea  Kind = "AREA"
	KindPoint Kind = "POINT"
)

// Raw dataset property keys.
const (
	PropCode = "CODE"
	PropArea = "OPPERVLAKTE"
)

// Zone is a processed off-leash zone. Zones are immutable after a pipeline
// pass except for DistanceKm, which is rewritten on user position updates.
type Zone struct {
	ID       string
	Category Category
	Kind     Kind

	// Geometry is the owning polygon or multipolygon. Nil for POINT zones,
	// which are represented by their centroid only.
	Geometry orb.Geometry

	// Centroid is mandatory: features without an extractable centroid are
	// dropped during classification.
	Centroid geo.LatLng

	// AreaM2 is the parsed surface in square meters, valid only for AREA
	// zones. For merged zones it is the sum of the constituent areas.
	AreaM2 float64

	// Merged marks an aggregate of several nearby same-category areas.
	// MergedCount is the number of constituents folded in.
	Merged      bool
	MergedCount int

	// DistanceKm is the distance to the last known user position, nil until
	// a position is available.
	DistanceKm *float64
}

// Clone returns a shallow copy of the zone record. The geometry is shared:
// it is never mutated after classification. Used to re-annotate distances
// without touching records already published to readers.
func (z *Zone) Clone() *Zone {
	c := *z
	return &c
}
