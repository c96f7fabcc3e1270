package geo

import (
	"math"
	"testing"

	"github.com/cheekybits/is"
	"github.com/paulmach/orb"
)

func TestCentroidPolygon(t *testing.T) {
	is := is.New(t)

	poly := orb.Polygon{{{5.38, 52.15}, {5.39, 52.15}, {5.39, 52.16}, {5.38, 52.15}}}

	c, ok := Centroid(poly)
	is.True(ok)
	is.Equal(c.Lat, 52.15)
	is.Equal(c.Lng, 5.38)
}

func TestCentroidMultiPolygon(t *testing.T) {
	is := is.New(t)

	mp := orb.MultiPolygon{
		{{{4.0, 51.0}, {4.1, 51.0}, {4.1, 51.1}, {4.0, 51.0}}},
		{{{6.0, 53.0}, {6.1, 53.0}, {6.1, 53.1}, {6.0, 53.0}}},
	}

	c, ok := Centroid(mp)
	is.True(ok)
	is.Equal(c.Lat, 51.0)
	is.Equal(c.Lng, 4.0)
}

func TestCentroidMalformed(t *testing.T) {
	is := is.New(t)

	_, ok := Centroid(orb.Polygon{})
	is.False(ok)

	_, ok = Centroid(orb.Polygon{{}})
	is.False(ok)

	_, ok = Centroid(orb.MultiPolygon{})
	is.False(ok)

	// Non-areal geometry has no zone centroid
	_, ok = Centroid(orb.Point{5.38, 52.15})
	is.False(ok)
}

func TestPadBoundIntersection(t *testing.T) {
	is := is.New(t)

	// Two tiny squares ~55m apart at mid-latitudes
	a := orb.Polygon{{{5.3800, 52.1500}, {5.3801, 52.1500}, {5.3801, 52.1501}, {5.3800, 52.1500}}}
	b := orb.Polygon{{{5.3800, 52.1505}, {5.3801, 52.1505}, {5.3801, 52.1506}, {5.3800, 52.1505}}}

	// Unpadded bounds do not touch
	is.False(BoundsIntersect(a.Bound(), b.Bound()))

	// Padding both sides by 50m closes the gap
	is.True(BoundsIntersect(PadBound(a, 50), PadBound(b, 50)))

	// 5m each is not enough
	is.False(BoundsIntersect(PadBound(a, 5), PadBound(b, 5)))
}

func TestDistanceZero(t *testing.T) {
	is := is.New(t)
	is.Equal(DistanceKm(52.1561, 5.3878, 52.1561, 5.3878), 0.0)
}

func TestDistanceLatitudeStep(t *testing.T) {
	is := is.New(t)

	// 0.01 degrees of latitude is about 1.11 km anywhere on the sphere
	d := DistanceKm(52.15, 5.38, 52.16, 5.38)
	is.True(math.Abs(d-1.11) < 0.0111)
}

func TestDistanceSymmetric(t *testing.T) {
	is := is.New(t)

	d1 := DistanceKm(52.1561, 5.3878, 51.9244, 4.4777)
	d2 := DistanceKm(51.9244, 4.4777, 52.1561, 5.3878)
	is.Equal(d1, d2)
	is.True(d1 > 0)
}

func TestLatLngDistanceTo(t *testing.T) {
	is := is.New(t)

	a := LatLng{Lat: 52.1561, Lng: 5.3878}
	b := LatLng{Lat: 52.1661, Lng: 5.3878}
	is.Equal(a.DistanceTo(b), DistanceKm(a.Lat, a.Lng, b.Lat, b.Lng))
	is.Equal(a.DistanceTo(a), 0.0)
}
