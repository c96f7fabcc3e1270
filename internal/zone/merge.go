package zone

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"

	"github.com/hondenkaart/zonemap/internal/geo"
)

// DefaultMergeDistanceM is the gap, in meters, below which two same-category
// area zones are collapsed into one aggregate.
const DefaultMergeDistanceM = 100.0

// MergeNearby collapses clusters of nearby AREA zones of the same category
// into single merged zones. Categories never merge across each other.
//
// The clustering is greedy and order-dependent: zones are scanned in input
// order, an unclaimed zone anchors a group and claims every later unclaimed
// zone whose tolerance region overlaps the group's running region. A zone
// claimed by an earlier group is never reconsidered, so reordering the input
// can change the clustering. Quadratic per category; fine for the dataset
// sizes this handles (tens to low hundreds of zones).
func MergeNearby(zones []*Zone, mergeDistanceM float64) []*Zone {
	byCat := make(map[Category][]*Zone)
	for _, z := range zones {
		byCat[z.Category] = append(byCat[z.Category], z)
	}

	out := make([]*Zone, 0, len(zones))
	for _, cat := range []Category{CategoryGreen, CategoryOrange} {
		out = append(out, mergeCategory(byCat[cat], cat, mergeDistanceM)...)
	}
	return out
}

func mergeCategory(zones []*Zone, cat Category, mergeDistanceM float64) []*Zone {
	// Each side gets half the merge distance, so the combined gap tested
	// between two zones is the full threshold.
	half := mergeDistanceM / 2

	out := make([]*Zone, 0, len(zones))
	claimed := make([]bool, len(zones))

	for i, anchor := range zones {
		if claimed[i] {
			continue
		}
		claimed[i] = true

		running, ok := zoneBound(anchor)
		if !ok {
			out = append(out, anchor)
			continue
		}

		sum := anchor.AreaM2
		count := 1

		for j := i + 1; j < len(zones); j++ {
			if claimed[j] {
				continue
			}
			if !withinTolerance(running, zones[j], half) {
				continue
			}

			claimed[j] = true
			sum += zones[j].AreaM2
			if b, ok := zoneBound(zones[j]); ok {
				running = running.Union(b)
			}
			count++
		}

		if count == 1 {
			out = append(out, anchor)
			continue
		}

		log.Debug().
			Str("category", string(cat)).
			Int("anchor", i).
			Int("members", count).
			Float64("area_m2", sum).
			Msg("Merged nearby zones")

		// Geometry and centroid stay with the anchor: the constituents are
		// not unioned into one polygon, the anchor stands in for the group.
		out = append(out, &Zone{
			ID:          fmt.Sprintf("merged-%s-%d", strings.ToLower(string(cat)), i),
			Category:    cat,
			Kind:        KindArea,
			Geometry:    anchor.Geometry,
			Centroid:    anchor.Centroid,
			AreaM2:      sum,
			Merged:      true,
			MergedCount: count,
		})
	}

	return out
}

// withinTolerance buffers the group's running region and the candidate's
// geometry by half the merge distance each and tests for overlap. A failure
// inside the geometry math for one pair must never abort the whole merge
// pass, so a panic here counts as "not mergeable".
func withinTolerance(running orb.Bound, candidate *Zone, halfM float64) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Interface("cause", r).Msg("Geometry comparison failed, treating as no intersection")
			ok = false
		}
	}()

	return geo.BoundsIntersect(
		geo.PadBoundBox(running, halfM),
		geo.PadBound(candidate.Geometry, halfM),
	)
}

func zoneBound(z *Zone) (b orb.Bound, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	if z.Geometry == nil {
		return orb.Bound{}, false
	}
	return z.Geometry.Bound(), true
}
