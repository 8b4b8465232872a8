package geodesic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDirectInverseRoundTrip checks that solving the direct problem and
// then feeding its endpoint back into Inverse recovers the original
// distance and starting azimuth, across a spread of latitudes,
// azimuths, and distances including short and long (but non-antipodal)
// lines.
func TestDirectInverseRoundTrip(t *testing.T) {
	cases := []struct {
		lat1, lon1, azi1, s12 float64
	}{
		{0, 0, 0, 1000},
		{0, 0, 45, 500_000},
		{45, -122, 30, 2_000_000},
		{-33, 151, 200, 8_000_000},
		{89, 0, 180, 300_000},
		{10, 170, 95, 6_000_000},
	}
	for _, c := range cases {
		_, fwd := WGS84.Direct(c.lat1, c.lon1, c.azi1, c.s12, STANDARD)
		_, inv := WGS84.Inverse(c.lat1, c.lon1, fwd.Lat2, fwd.Lon2, STANDARD)
		assert.InDelta(t, c.s12, inv.S12, 1e-6*c.s12+1e-3,
			"distance round trip for %+v", c)
		assert.InDelta(t, 0, angNormalize(c.azi1-inv.Azi1), 1e-6,
			"azimuth round trip for %+v", c)
	}
}

// TestInverseSymmetry checks that swapping the two endpoints of an
// inverse solve leaves the distance unchanged and flips each azimuth by
// 180 degrees relative to the other direction's arrival azimuth.
func TestInverseSymmetry(t *testing.T) {
	_, fwd := WGS84.Inverse(12.3, 45.6, -54.3, 170.1, STANDARD)
	_, rev := WGS84.Inverse(-54.3, 170.1, 12.3, 45.6, STANDARD)
	assert.InDelta(t, fwd.S12, rev.S12, 1e-6)
	assert.InDelta(t, 0, angNormalize(fwd.Azi1-rev.Azi2+180), 1e-9)
	assert.InDelta(t, 0, angNormalize(fwd.Azi2-rev.Azi1+180), 1e-9)
}

// TestInverseArcBounds checks the documented a12 range for a battery of
// random-ish point pairs, including antipodal and near-antipodal cases
// that exercise the astroid branch of inverseStart.
func TestInverseArcBounds(t *testing.T) {
	cases := [][4]float64{
		{0, 0, 0, 179.9},   // near-antipodal on the equator
		{30, 10, -30, 190}, // antipodal off the equator
		{89.9, 0, -89.9, 180},
		{0, 0, 10, 20},
	}
	for _, c := range cases {
		a12, out := WGS84.Inverse(c[0], c[1], c[2], c[3], STANDARD)
		require.False(t, math.IsNaN(a12), "case %v failed to converge", c)
		assert.GreaterOrEqual(t, a12, 0.0)
		assert.LessOrEqual(t, a12, 180.0)
		assert.False(t, math.IsNaN(out.S12))
	}
}

// TestInverseLineMatchesInverse checks that the GeodesicLine returned by
// InverseLine, queried at the inverse distance, lands on point 2.
func TestInverseLineMatchesInverse(t *testing.T) {
	lat1, lon1, lat2, lon2 := 41.0, -87.0, 51.5, -0.1
	a12, out := WGS84.Inverse(lat1, lon1, lat2, lon2, STANDARD)
	require.False(t, math.IsNaN(a12))

	line := WGS84.InverseLine(lat1, lon1, lat2, lon2, LineCaps)
	_, pos := line.PositionAt(out.S12, LATITUDE|LONGITUDE)
	assert.InDelta(t, lat2, pos.Lat2, 1e-6)
	assert.InDelta(t, lon2, pos.Lon2, 1e-6)
}

// TestInverseCoincidentPoints checks the degenerate case of identical
// endpoints: zero distance, and a well-defined (non-NaN) arc length.
func TestInverseCoincidentPoints(t *testing.T) {
	a12, out := WGS84.Inverse(12.0, 34.0, 12.0, 34.0, STANDARD)
	assert.InDelta(t, 0, a12, 1e-9)
	assert.InDelta(t, 0, out.S12, 1e-6)
}
