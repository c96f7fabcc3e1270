package zone

import (
	"sort"

	"github.com/hondenkaart/zonemap/internal/geo"
)

// DefaultTopK is the default size of the nearest-zone list.
const DefaultTopK = 5

// Ranked pairs a zone with its distance from the user position.
type Ranked struct {
	Zone       *Zone
	DistanceKm float64
}

// Rank computes the distance from pos to every zone's centroid and returns
// the k nearest, sorted ascending by distance. The sort is stable: zones at
// equal distance keep their input order. Returns fewer than k entries only
// when fewer zones exist, and nothing for k <= 0.
func Rank(zones []*Zone, pos geo.LatLng, k int) []Ranked {
	if k <= 0 || len(zones) == 0 {
		return nil
	}

	ranked := make([]Ranked, len(zones))
	for i, z := range zones {
		ranked[i] = Ranked{Zone: z, DistanceKm: pos.DistanceTo(z.Centroid)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// AnnotateAll rewrites every zone's DistanceKm for a new user position.
func AnnotateAll(zones []*Zone, pos geo.LatLng) {
	for _, z := range zones {
		AnnotateDistance(z, pos)
	}
}

// AnnotateDistance rewrites a single zone's DistanceKm. This is the point
// update used for the externally selected zone, independent of the top-k
// ranking pass.
func AnnotateDistance(z *Zone, pos geo.LatLng) {
	d := pos.DistanceTo(z.Centroid)
	z.DistanceKm = &d
}
