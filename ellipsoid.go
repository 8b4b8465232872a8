package geodesic

import "math"

// Capability is a bitset selecting which quantities a Position/Direct/
// Inverse call should compute, and which series coefficients a
// GeodesicLine must materialize to support them. Bits 0-4 are internal
// "cap" bits recording coefficient-table dependencies; bits 7 and up are
// the public output selectors, mirroring GeographicLib's Geodesic::mask.
type Capability uint32

const (
	capNone Capability = 0
	capC1   Capability = 1 << 0
	capC1p  Capability = 1 << 1
	capC2   Capability = 1 << 2
	capC3   Capability = 1 << 3
	capC4   Capability = 1 << 4
	capAll  Capability = 0x1F
	outAll  Capability = 0x7F80
	outMask Capability = 0xFF80

	// LATITUDE, LONGITUDE, and AZIMUTH select lat2, lon2, and azi2 in
	// Position's output. Every GeodesicLine carries LATITUDE and AZIMUTH in
	// its capabilities; LONGITUDE must be requested when the line is built.
	LATITUDE  Capability = 1<<7 | capNone
	LONGITUDE Capability = 1<<8 | capC3
	AZIMUTH   Capability = 1<<9 | capNone
	// DISTANCE fills Output.S12: computed in arc mode, and a copy of the
	// input distance in distance mode.
	DISTANCE Capability = 1<<10 | capC1
	// DISTANCEIN allows a GeodesicLine's Position to accept a distance
	// (rather than only an arc length) as input.
	DISTANCEIN    Capability = 1<<11 | capC1 | capC1p
	REDUCEDLENGTH Capability = 1<<12 | capC1 | capC2
	GEODESICSCALE Capability = 1<<13 | capC1 | capC2
	AREA          Capability = 1<<14 | capC4
	// LONGUNROLL is accepted as a mask bit but has no effect: Position
	// drops it and always reduces longitudes to [-180, 180), so multiple
	// revolutions are not tracked.
	LONGUNROLL Capability = 1 << 15

	// STANDARD is the default output set for Inverse: position, azimuths,
	// distance, and arc length.
	STANDARD Capability = LATITUDE | LONGITUDE | AZIMUTH | DISTANCE
	// ALLCAPS requests every available output.
	ALLCAPS Capability = outAll | capAll
)

const digits = 53
const maxit1 = 20
const maxit2 = maxit1 + digits + 10

// Ellipsoid holds the geometric constants and precomputed series
// coefficient tables for an ellipsoid of revolution. It is immutable
// after construction and safe for concurrent use: every method is a
// pure function of the instance and its arguments.
type Ellipsoid struct {
	a, f, f1     float64
	e2, ep2      float64
	n, b, c2     float64
	etol2        float64
	tol0, tol1   float64
	tolb         float64
	xthresh      float64
	tiny         float64
	a3x, c3x, c4x []float64
}

// WGS84 is a package-level Ellipsoid for the World Geodetic System 1984
// reference ellipsoid.
var WGS84 = mustEllipsoid(6378137, 1/298.257223563)

func mustEllipsoid(a, f float64) *Ellipsoid {
	e, err := NewEllipsoid(a, f)
	if err != nil {
		panic(err)
	}
	return e
}

// NewEllipsoid constructs an Ellipsoid from an equatorial radius a
// (meters) and flattening f (0 for a sphere, negative for a prolate
// ellipsoid). It returns ErrInvalidEllipsoid if a is not a finite
// positive quantity, or if f describes a degenerate or non-finite
// ellipsoid (|f| >= 1, or the derived polar semi-axis is non-positive).
func NewEllipsoid(a, f float64) (*Ellipsoid, error) {
	if !(a > 0 && !math.IsInf(a, 0)) {
		return nil, ErrInvalidEllipsoid
	}
	if !(f > -1 && f < 1) {
		return nil, ErrInvalidEllipsoid
	}
	b := a * (1 - f)
	if !(b > 0 && !math.IsInf(b, 0)) {
		return nil, ErrInvalidEllipsoid
	}
	e2 := f * (2 - f)
	tol0 := math.Pow(2, 1-digits)
	tol2 := math.Sqrt(tol0)

	c2 := b * b
	switch {
	case e2 > 0:
		c2 *= math.Atanh(math.Sqrt(e2)) / math.Sqrt(e2)
	case e2 < 0:
		c2 *= math.Atan(math.Sqrt(-e2)) / math.Sqrt(-e2)
	}
	c2 = (a*a + c2) / 2

	e := &Ellipsoid{
		a:   a,
		f:   f,
		f1:  1 - f,
		e2:  e2,
		ep2: e2 / ((1 - f) * (1 - f)),
		n:   f / (2 - f),
		b:   b,
		c2:  c2,
		etol2: 0.1 * tol2 / math.Sqrt(math.Max(0.001, math.Abs(f))*
			math.Min(1.0, 1-f/2)/2),
		tol0:    tol0,
		tol1:    200 * tol0,
		tolb:    tol0 * tol2,
		xthresh: 1000 * tol2,
		tiny:    math.Sqrt(math.Pow(2, -1022)),
	}
	e.a3x = a3Coeff(e.n)
	e.c3x = c3Coeff(e.n)
	e.c4x = c4Coeff(e.n)
	return e, nil
}

// EquatorialRadius returns a, the equatorial radius in meters.
func (e *Ellipsoid) EquatorialRadius() float64 { return e.a }

// Flattening returns f.
func (e *Ellipsoid) Flattening() float64 { return e.f }

// InverseFlattening returns 1/f, or 0 for a sphere.
func (e *Ellipsoid) InverseFlattening() float64 {
	if e.f == 0 {
		return 0
	}
	return 1 / e.f
}

// PolarRadius returns b = a*(1-f).
func (e *Ellipsoid) PolarRadius() float64 { return e.b }

// AuthalicRadiusSquared returns c^2, the constant used to convert the
// alpha12 angular excess into a spheroidal area.
func (e *Ellipsoid) AuthalicRadiusSquared() float64 { return e.c2 }

// AuthalicRadius returns R = sqrt(c^2), the radius of the sphere with the
// same surface area as the ellipsoid.
func (e *Ellipsoid) AuthalicRadius() float64 { return math.Sqrt(e.c2) }
