package source

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/cheekybits/is"
	"github.com/paulmach/orb"

	"github.com/hondenkaart/zonemap/internal/geo"
	"github.com/hondenkaart/zonemap/internal/zone"
)

const sampleDataset = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"id": "hz-1",
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[5.38, 52.15], [5.381, 52.15], [5.381, 52.151], [5.38, 52.15]]]
			},
			"properties": {"CODE": "GREEN", "OPPERVLAKTE": "1250.5"}
		},
		{
			"type": "Feature",
			"geometry": {
				"type": "Polygon",
				"coordinates": [[[5.39, 52.16], [5.391, 52.16], [5.391, 52.161], [5.39, 52.16]]]
			},
			"properties": {"CODE": "ORANGE"}
		}
	]
}`

func TestFetchFromFile(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "zones.geojson")
	is.NoErr(os.WriteFile(path, []byte(sampleDataset), 0644))

	fc, err := Fetch(http.DefaultClient, path)
	is.NoErr(err)
	is.NotNil(fc)
	is.Equal(len(fc.Features), 2)
	is.Equal(fc.Features[0].Properties.MustString("CODE", ""), "GREEN")
}

func TestFetchFromURL(t *testing.T) {
	is := is.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleDataset))
	}))
	defer srv.Close()

	fc, err := Fetch(srv.Client(), srv.URL)
	is.NoErr(err)
	is.Equal(len(fc.Features), 2)
}

func TestFetchMalformedIsFatal(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "broken.geojson")
	is.NoErr(os.WriteFile(path, []byte(`{"this is": "not geojson`), 0644))

	_, err := Fetch(http.DefaultClient, path)
	is.NotNil(err)
	is.True(errors.Is(err, ErrBadDataset))
}

func TestFetchMissingFile(t *testing.T) {
	is := is.New(t)

	_, err := Fetch(http.DefaultClient, filepath.Join(t.TempDir(), "nope.geojson"))
	is.NotNil(err)
	// An unreadable file is not a dataset parse failure
	is.False(errors.Is(err, ErrBadDataset))
}

func TestExport(t *testing.T) {
	is := is.New(t)

	d := 1.25
	zones := []*zone.Zone{
		{
			ID:          "merged-green-0",
			Category:    zone.CategoryGreen,
			Kind:        zone.KindArea,
			Geometry:    orb.Polygon{{{5.38, 52.15}, {5.381, 52.15}, {5.381, 52.151}, {5.38, 52.15}}},
			Centroid:    geo.LatLng{Lat: 52.15, Lng: 5.38},
			AreaM2:      500,
			Merged:      true,
			MergedCount: 2,
			DistanceKm:  &d,
		},
		{
			ID:       "hz-2",
			Category: zone.CategoryOrange,
			Kind:     zone.KindPoint,
			Centroid: geo.LatLng{Lat: 52.16, Lng: 5.39},
		},
	}

	fc := Export(zones)
	is.Equal(len(fc.Features), 2)

	area := fc.Features[0]
	is.Equal(area.Properties["category"], "GREEN")
	is.Equal(area.Properties["kind"], "AREA")
	is.Equal(area.Properties["area_m2"], 500.0)
	is.Equal(area.Properties["merged"], true)
	is.Equal(area.Properties["merged_count"], 2)
	is.Equal(area.Properties["distance_km"], 1.25)

	point := fc.Features[1]
	is.Equal(point.Properties["kind"], "POINT")
	is.Equal(point.Geometry, orb.Point{5.39, 52.16})
	_, hasArea := point.Properties["area_m2"]
	is.False(hasArea)
	_, hasMerged := point.Properties["merged"]
	is.False(hasMerged)
}

func TestSaveRoundTrip(t *testing.T) {
	is := is.New(t)

	path := filepath.Join(t.TempDir(), "out", "zones.geojson")

	fcIn, err := Fetch(http.DefaultClient, writeSample(t))
	is.NoErr(err)
	is.NoErr(Save(path, fcIn))

	fcOut, err := Fetch(http.DefaultClient, path)
	is.NoErr(err)
	is.Equal(len(fcOut.Features), len(fcIn.Features))
}

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zones.geojson")
	if err := os.WriteFile(path, []byte(sampleDataset), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}
