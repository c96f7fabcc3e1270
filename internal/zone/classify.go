package zone

import (
	"fmt"
	"strconv"

	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/hondenkaart/zonemap/internal/geo"
)

// Classify turns a raw feature collection into typed zones, split into AREA
// and POINT zones. Both slices preserve input order. Features with an
// unknown category, missing geometry or no extractable centroid are skipped,
// never errored. The pass is a pure function of its input.
func Classify(fc *geojson.FeatureCollection) (areas, points []*Zone) {
	seen := make(map[string]bool)

	for i, f := range fc.Features {
		cat, ok := ParseCategory(f.Properties.MustString(PropCode, ""))
		if !ok {
			log.Debug().
				Int("feature", i).
				Str("code", f.Properties.MustString(PropCode, "")).
				Msg("Skipping feature: unknown category")
			continue
		}

		if f.Geometry == nil {
			log.Debug().Int("feature", i).Msg("Skipping feature: no geometry")
			continue
		}

		centroid, ok := geo.Centroid(f.Geometry)
		if !ok {
			log.Debug().Int("feature", i).Msg("Skipping feature: no extractable centroid")
			continue
		}

		id := featureID(f, i)
		if seen[id] {
			// Datasets occasionally repeat feature ids; keep them unique
			// within the pass by the input position.
			id = fmt.Sprintf("%s-%d", id, i)
		}
		seen[id] = true

		z := &Zone{
			ID:       id,
			Category: cat,
			Centroid: centroid,
		}

		// A valid positive area makes this an AREA zone; anything else is a
		// degrade signal, not an error.
		if area, ok := parseArea(f.Properties[PropArea]); ok {
			z.Kind = KindArea
			z.AreaM2 = area
			z.Geometry = f.Geometry
			areas = append(areas, z)
		} else {
			z.Kind = KindPoint
			points = append(points, z)
		}
	}

	return areas, points
}

// featureID returns an identifier unique within the pass: the feature's own
// id when present, the input position otherwise.
func featureID(f *geojson.Feature, idx int) string {
	if f.ID != nil {
		return fmt.Sprintf("%v", f.ID)
	}
	return fmt.Sprintf("zone-%d", idx)
}

// parseArea accepts the dataset's decimal-string area as well as a raw JSON
// number. Only positive values count.
func parseArea(v interface{}) (float64, bool) {
	var area float64
	switch value := v.(type) {
	case string:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, false
		}
		area = parsed
	case float64:
		area = value
	case int:
		area = float64(value)
	default:
		return 0, false
	}

	if area <= 0 {
		return 0, false
	}
	return area, true
}
