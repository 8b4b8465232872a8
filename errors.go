package geodesic

import "errors"

// ErrInvalidEllipsoid is returned by NewEllipsoid and NewIntersect when the
// equatorial radius or flattening parameters cannot describe a physical
// ellipsoid of revolution.
var ErrInvalidEllipsoid = errors.New("geodesic: invalid ellipsoid parameters")

// ErrIntersectInfeasible is returned by NewIntersect when an internal
// sanity check fails: the conjugate-distance search used to derive the
// tiling constants does not converge. (A flattening outside the validated
// band is reported as ErrInvalidEllipsoid instead.)
var ErrIntersectInfeasible = errors.New("geodesic: intersect engine sanity check failed")
