package geodesic

// DirectSolver: solve the direct geodesic problem by building a single
// GeodesicLine and querying its position at the given distance (or arc
// length). See original_source/include/GeographicLib/Geodesic.hpp
// Direct/ArcDirect for the reference call shapes this mirrors.

// Direct solves the direct geodesic problem: given a starting point,
// azimuth, and distance s12 (meters), compute the endpoint. outmask
// selects which of (lat2, lon2, azi2, m12, M12, M21, S12) to populate;
// the return value is the arc length a12 (degrees).
func (e *Ellipsoid) Direct(lat1, lon1, azi1, s12 float64, outmask Capability) (float64, Output) {
	line := e.Line(lat1, lon1, azi1, outmask|DISTANCEIN)
	return line.Position(false, s12, outmask)
}

// ArcDirect solves the direct geodesic problem given an arc length a12
// (degrees) instead of a distance. It returns only the Output; the
// distance s12 (meters) is always filled in its S12 field, whether or not
// outmask includes DISTANCE.
func (e *Ellipsoid) ArcDirect(lat1, lon1, azi1, a12 float64, outmask Capability) Output {
	line := e.Line(lat1, lon1, azi1, outmask|DISTANCE)
	_, out := line.Position(true, a12, outmask|DISTANCE)
	return out
}

// DirectLine builds the GeodesicLine for the direct problem without
// evaluating a position, for callers who want to query multiple
// distances along the same geodesic.
func (e *Ellipsoid) DirectLine(lat1, lon1, azi1 float64, caps Capability) *GeodesicLine {
	return e.Line(lat1, lon1, azi1, caps)
}
