package geodesic

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func eqish(x, y float64, prec int) bool {
	return math.Abs(x-y) < float64(1.0)/math.Pow10(prec)
}

// testInverse/testDirect check one case each and are kept as the
// teacher's own small table-test helpers (geodesic_test.go), just
// retargeted at the new value-returning API.

func testInverse(t *testing.T, lat1, lon1, lat2, lon2, s12, azi1, azi2 float64) {
	t.Helper()
	_, out := WGS84.Inverse(lat1, lon1, lat2, lon2, STANDARD)
	if !eqish(out.S12, s12, 4) || !eqish(out.Azi1, azi1, 4) || !eqish(out.Azi2, azi2, 4) {
		t.Fatalf("expected '%f, %f, %f', got '%f, %f, %f'",
			s12, azi1, azi2, out.S12, out.Azi1, out.Azi2)
	}
}

func testDirect(t *testing.T, lat1, lon1, lat2, lon2, s12, azi1, azi2 float64) {
	t.Helper()
	_, out := WGS84.Direct(lat1, lon1, azi1, s12, STANDARD)
	if !eqish(out.Lat2, lat2, 4) || !eqish(out.Lon2, lon2, 4) || !eqish(out.Azi2, azi2, 4) {
		t.Logf("direct   'lat1: %f, lon1: %f, azi1: %f, s12: %f'\n", lat1, lon1, azi1, s12)
		t.Logf("expected 'lat2: %f, lon2: %f, azi2: %f'\n", lat2, lon2, azi2)
		t.Logf("got      'lat2: %f, lon2: %f, azi2: %f'", out.Lat2, out.Lon2, out.Azi2)
		t.FailNow()
	}
}

// TestInput exercises a handful of named WGS84 cases with known closed
// forms, rather than the teacher's binary test.data fixture (generated
// by an external project and not part of this retrieval).
func TestInput(t *testing.T) {
	// A quarter of the equator: travel due east for a quarter of the
	// equatorial circumference and land on longitude 90.
	quarterEq := math.Pi / 2 * WGS84.EquatorialRadius()
	testDirect(t, 0, 0, 0, 90, quarterEq, 90, 90)
	testInverse(t, 0, 0, 0, 90, quarterEq, 90, 90)

	// Due north from the equator to the pole along a meridian covers a
	// quarter of the meridian's arc (a12 = 90 degrees exactly), though
	// the arc length itself depends on the flattening, so check via
	// ArcDirect instead of a literal distance.
	out := WGS84.ArcDirect(0, 0, 0, 90, LATITUDE|LONGITUDE|AZIMUTH)
	if !eqish(out.Lat2, 90, 6) || !eqish(out.Lon2, 0, 6) {
		t.Fatalf("meridian quarter arc mismatch: %+v", out)
	}

	// Symmetric inverse: swapping the endpoints must flip both
	// azimuths by 180 degrees and leave s12 unchanged.
	lat1, lon1, lat2, lon2 := 40.0, -73.0, 51.0, 0.0
	_, fwd := WGS84.Inverse(lat1, lon1, lat2, lon2, STANDARD)
	_, rev := WGS84.Inverse(lat2, lon2, lat1, lon1, STANDARD)
	if !eqish(fwd.S12, rev.S12, 4) {
		t.Fatalf("inverse distance not symmetric: %f vs %f", fwd.S12, rev.S12)
	}
	if !eqish(wrap180(fwd.Azi1-rev.Azi2+180), 0, 4) || !eqish(wrap180(fwd.Azi2-rev.Azi1+180), 0, 4) {
		t.Fatalf("inverse azimuths not antisymmetric: fwd=%+v rev=%+v", fwd, rev)
	}

	testPolygon(t)
}

// testPolygon checks a small near-equatorial square: the vertex count is
// reported back, the area is small and nonzero, reversing vertex order
// negates the signed area without moving the perimeter, and the same
// vertices as an open polyline give zero area and a length shorter than
// the closed perimeter.
func testPolygon(t *testing.T) {
	verts := [][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	p := WGS84.PolygonInit(false)
	for _, v := range verts {
		p.AddPoint(v[0], v[1])
	}
	area, perim, count := p.Compute(true, true)
	if count != len(verts) {
		t.Fatalf("expected %d vertices, got %d", len(verts), count)
	}
	// A one-degree-square patch near the equator covers roughly
	// 111km * 111km; allow a wide margin either side of its sign.
	if area == 0 || math.Abs(area) > 2e10 {
		t.Fatalf("expected a small nonzero area for a one-degree square, got %f", area)
	}

	rp := WGS84.PolygonInit(false)
	for i := len(verts) - 1; i >= 0; i-- {
		rp.AddPoint(verts[i][0], verts[i][1])
	}
	rarea, rperim, _ := rp.Compute(true, true)
	if !eqish(perim, rperim, 3) {
		t.Fatalf("perimeter changed under vertex reversal: %f vs %f", perim, rperim)
	}
	// Compute reduces the area modulo the earth's total area (~5.1e14 m^2),
	// where doubles are spaced 1/16 apart, so compare to within 1 m^2.
	if !eqish(area, -rarea, 0) {
		t.Fatalf("area did not negate under vertex reversal: %f vs %f", area, rarea)
	}

	line := WGS84.PolygonInit(true)
	for _, v := range verts {
		line.AddPoint(v[0], v[1])
	}
	lineArea, lineLen, _ := line.Compute(true, true)
	if lineArea != 0 {
		t.Fatalf("expected zero area for a polyline, got %f", lineArea)
	}
	if lineLen <= 0 || lineLen >= perim {
		t.Fatalf("polyline length %f should be positive and shorter than the closed perimeter %f", lineLen, perim)
	}
}

// TestSpherical checks that the haversine fast path in
// spherical_teacher.go — kept for IntersectEngine's Solve0 — agrees
// with the full ellipsoidal solver on a sphere (f=0), to the coarser
// precision a great-circle approximation of the ellipsoidal formulas
// should be expected to hit.
func TestSpherical(t *testing.T) {
	if wrap180(-181) != 179 {
		t.Fatal()
	}
	if wrap180(+181) != -179 {
		t.Fatal()
	}

	sphere, err := NewEllipsoid(WGS84.EquatorialRadius(), 0)
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 10_000; i++ {
		lat1 := rng.Float64()*180 - 90
		lon1 := rng.Float64()*360 - 180
		lat2 := rng.Float64()*180 - 90
		lon2 := rng.Float64()*360 - 180

		_, out := sphere.Inverse(lat1, lon1, lat2, lon2, STANDARD)

		s12 := distance(sphere.EquatorialRadius(), lat1, lon1, lat2, lon2)
		azi1 := bearing(lat1, lon1, lat2, lon2)
		azi2 := wrap180(bearing(lat2, lon2, lat1, lon1) + 180)
		if !eqish(s12, out.S12, 4) || !eqish(azi1, out.Azi1, 4) || !eqish(azi2, out.Azi2, 4) {
			t.Fatalf("inverse mismatch (%f %f %f %f) ellipsoid=(%f %f %f) haversine=(%f %f %f)",
				lat1, lon1, lat2, lon2, out.S12, out.Azi1, out.Azi2, s12, azi1, azi2)
		}

		lat2h, lon2h := destination(sphere.EquatorialRadius(), lat1, lon1, out.S12, out.Azi1)
		_, dout := sphere.Direct(lat1, lon1, out.Azi1, out.S12, STANDARD)
		if !eqish(lat2h, dout.Lat2, 4) || !eqish(lon2h, dout.Lon2, 4) {
			t.Fatalf("direct mismatch: ellipsoid=(%f %f) haversine=(%f %f)",
				dout.Lat2, dout.Lon2, lat2h, lon2h)
		}
	}
}
