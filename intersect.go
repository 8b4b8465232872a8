package geodesic

// IntersectEngine finds intersections of pairs of geodesics, following
// the five-level solver (spherical seed, iterated spherical refinement,
// tiled search, segment/corner handling, exhaustive search) described in
// Karney's geodesic-intersection method. original_source's
// Intersect.hpp is header-only in the retrieval pack (its .cpp, and the
// closed-form ConjugateDist/distpolar/polarb/conjdist/distoblique
// formulas it implies, were not retrieved), so Solve0..Solve5 here are
// built from the header's declared shape plus the spec's prose
// description of each level; ConjugateDist is implemented directly from
// its definition (the point where the reduced length m12 vanishes)
// rather than the closed-form shortcuts GeographicLib uses. See
// DESIGN.md for the substitutions this required.

import (
	"math"
	"sort"
)

// LineCaps is the minimum GeodesicLine capability mask required by an
// IntersectEngine; lines built for use with it should include at least
// these bits.
const LineCaps = LATITUDE | LONGITUDE | AZIMUTH | REDUCEDLENGTH | GEODESICSCALE | DISTANCEIN

// XPoint is a candidate or resolved intersection: signed displacements
// x (along line X) and y (along line Y) in meters from each line's
// start, plus a coincidence code (0 = normal, +1 = parallel coincident,
// -1 = anti-parallel coincident).
type XPoint struct {
	X, Y float64
	C    int
}

func (p XPoint) dist() float64 { return math.Abs(p.X) + math.Abs(p.Y) }
func (p XPoint) distTo(q XPoint) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}
func (p XPoint) valid() bool { return !math.IsNaN(p.X) && !math.IsNaN(p.Y) }

// IntersectEngine holds an Ellipsoid view plus the derived radii and
// tiling constants used by the solver levels. Immutable after
// construction and safe for concurrent use.
type IntersectEngine struct {
	ellip *Ellipsoid
	r     float64 // authalic radius
	d     float64 // pi * r
	tol   float64 // Solve1 convergence threshold, meters
	slop  float64 // fuzzy-equality / tiling safety margin, meters
	eps   float64 // parallel/anti-parallel azimuth criterion, degrees

	d1, d2, d3 float64 // tiling spacing for Closest, Next, All

	cnt0, cnt1, cnt2, cnt3, cnt4 int64 // advisory call counters
}

// NewIntersect constructs an IntersectEngine for the given ellipsoid.
// GeographicLib's Intersect is validated for -1/4 <= f <= 1/5; outside
// that band this returns ErrInvalidEllipsoid. It also runs the
// conjugate-point search used to derive the engine's tiling constants;
// if that search fails to converge (an internal sanity check, not
// expected for any physically reasonable ellipsoid), it returns
// ErrIntersectInfeasible.
func NewIntersect(e *Ellipsoid) (*IntersectEngine, error) {
	if e.f < -0.25 || e.f > 0.2 {
		return nil, ErrInvalidEllipsoid
	}
	r := e.AuthalicRadius()
	ix := &IntersectEngine{
		ellip: e,
		r:     r,
		d:     math.Pi * r,
		tol:   1e2 * e.tol0 * r,
		slop:  1e3 * e.tol0 * r,
		eps:   1e-9,
	}
	equator := e.Line(0, 0, 90, LineCaps)
	conj, err := ix.conjugateDist(equator, ix.d, false)
	if err != nil {
		return nil, err
	}
	ix.d1 = 0.75 * conj
	ix.d2 = 1.5 * conj
	ix.d3 = conj
	return ix, nil
}

// conjugateDist finds the arc length (from the line's start, along its
// forward direction) of the {semi-,}conjugate point nearest s3: the
// point where the reduced length m12 (or, for a semi-conjugate point,
// the geodesic scale M12) vanishes. Located by a bounded secant search
// seeded at s3.
func (ix *IntersectEngine) conjugateDist(line *GeodesicLine, s3 float64, semi bool) (float64, error) {
	f := func(s float64) float64 {
		_, out := line.PositionAt(s, REDUCEDLENGTH|GEODESICSCALE)
		if semi {
			return out.M12Scale
		}
		return out.M12
	}
	s0 := s3
	s1 := s3 + math.Max(1.0, math.Abs(s3)*0.01)
	f0, f1 := f(s0), f(s1)
	for i := 0; i < 30; i++ {
		if f1 == f0 {
			break
		}
		s2 := s1 - f1*(s1-s0)/(f1-f0)
		s0, f0 = s1, f1
		s1 = s2
		f1 = f(s1)
		if math.Abs(f1) < 1e-9*ix.r {
			return s1, nil
		}
	}
	if !(math.Abs(f1) < 1e-9*ix.r) {
		return 0, ErrIntersectInfeasible
	}
	return s1, nil
}

// solve0 computes the great-circle (spherical, radius r) intersection of
// the two lines' initial great circles via greatCircleIntersect, then
// converts the resulting point back into signed along-line displacement
// (x, y) using the same haversine distance/bearing the teacher's
// spherical.go uses for point-to-point queries. The antipodal solution
// is tried too, and whichever lands closer (L1) to the reference point
// ref is returned. ok is false when the two great circles are
// (near-)coincident or otherwise fail to resolve a crossing, in which
// case the returned point is meaningless and must not be treated as a
// converged answer by the caller.
func (ix *IntersectEngine) solve0(lineX, lineY *GeodesicLine, ref XPoint) (XPoint, bool) {
	ix.cnt0++
	lat3, lon3, ok := greatCircleIntersect(
		lineX.Latitude(), lineX.Longitude(), lineX.Azimuth(),
		lineY.Latitude(), lineY.Longitude(), lineY.Azimuth())
	if !ok {
		return XPoint{ref.X, ref.Y, 0}, false
	}
	toXY := func(lat, lon float64) XPoint {
		dx := distance(ix.r, lineX.Latitude(), lineX.Longitude(), lat, lon)
		if db := bearing(lineX.Latitude(), lineX.Longitude(), lat, lon); math.Abs(angNormalize(db-lineX.Azimuth())) > 90 {
			dx = -dx
		}
		dy := distance(ix.r, lineY.Latitude(), lineY.Longitude(), lat, lon)
		if db := bearing(lineY.Latitude(), lineY.Longitude(), lat, lon); math.Abs(angNormalize(db-lineY.Azimuth())) > 90 {
			dy = -dy
		}
		return XPoint{dx, dy, 0}
	}
	lat3n, lon3n := -lat3, wrap180(lon3+180)
	p1, p2 := toXY(lat3, lon3), toXY(lat3n, lon3n)
	if p1.distTo(ref) <= p2.distTo(ref) {
		return p1, true
	}
	return p2, true
}

// Solve1 iteratively refines a spherical seed by re-deriving the two
// lines' local great circles at the current guess and re-solving,
// capped at 10 iterations per spec. If the local great circles come
// back coincident (ok=false) at any step, there is no local crossing to
// converge on, so this returns NaN rather than reporting the seed as a
// converged result.
func (ix *IntersectEngine) solve1(lineX, lineY *GeodesicLine, p0 XPoint) XPoint {
	ix.cnt1++
	p := p0
	for i := 0; i < 10; i++ {
		_, ox := lineX.PositionAt(p.X, LATITUDE|LONGITUDE|AZIMUTH)
		_, oy := lineY.PositionAt(p.Y, LATITUDE|LONGITUDE|AZIMUTH)
		if math.IsNaN(ox.Lat2) || math.IsNaN(oy.Lat2) {
			return XPoint{math.NaN(), math.NaN(), 0}
		}
		shiftedX := ix.ellip.Line(ox.Lat2, ox.Lon2, ox.Azi2, LineCaps)
		shiftedY := ix.ellip.Line(oy.Lat2, oy.Lon2, oy.Azi2, LineCaps)
		delta, ok := ix.solve0(shiftedX, shiftedY, XPoint{0, 0, 0})
		if !ok {
			return XPoint{math.NaN(), math.NaN(), 0}
		}
		next := XPoint{p.X + delta.X, p.Y + delta.Y, p.C}
		if delta.dist() < ix.tol {
			return next
		}
		p = next
	}
	return p
}

// coincidence reports whether lineX and lineY trace the same geodesic,
// from the lines' geometry alone (never from azimuths sampled at
// unrelated, independently chosen arc lengths on each line, which need
// not correspond to the same physical point). c is 0 if the lines are
// not coincident, +1 if they run in the same direction, -1 if they run
// in opposite directions. off is the arc length along lineX, from its
// start, of the point that coincides with lineY's start; it is only
// meaningful when c != 0.
func (ix *IntersectEngine) coincidence(lineX, lineY *GeodesicLine) (c int, off float64) {
	_, start := ix.ellip.Inverse(lineX.Latitude(), lineX.Longitude(), lineY.Latitude(), lineY.Longitude(), AZIMUTH|DISTANCE)
	if start.S12 < ix.slop {
		d := angNormalize(lineX.Azimuth() - lineY.Azimuth())
		switch {
		case math.Abs(d) < ix.eps:
			return 1, 0
		case math.Abs(math.Abs(d)-180) < ix.eps:
			return -1, 0
		default:
			return 0, 0
		}
	}
	toX := angNormalize(start.Azi1 - lineX.Azimuth())
	switch {
	case math.Abs(toX) < ix.eps:
		off = start.S12
	case math.Abs(math.Abs(toX)-180) < ix.eps:
		off = -start.S12
	default:
		return 0, 0
	}
	_, atOff := lineX.PositionAt(off, AZIMUTH)
	d := angNormalize(atOff.Azi2 - lineY.Azimuth())
	switch {
	case math.Abs(d) < ix.eps:
		return 1, off
	case math.Abs(math.Abs(d)-180) < ix.eps:
		return -1, off
	default:
		return 0, 0
	}
}

// fixcoincident projects p0 onto the shared geodesic of two lines known
// (from coincidence) to be coincident with orientation c and offset
// off: the point at arc x along lineX coincides with arc y=x-off along
// lineY if they run the same direction (c>0), or y=off-x if they run
// opposite directions (c<0). The projection picked is the one nearest
// p0.
func fixcoincident(p0 XPoint, c int, off float64) XPoint {
	if c > 0 {
		k := -off
		x := (p0.X + p0.Y - k) / 2
		return XPoint{x, x + k, c}
	}
	k := off
	x := (p0.X - p0.Y + k) / 2
	return XPoint{x, k - x, c}
}

type xpointSet struct {
	slop float64
	pts  []XPoint
}

func (s *xpointSet) insert(p XPoint) {
	if !p.valid() {
		return
	}
	for _, q := range s.pts {
		if q.distTo(p) <= s.slop {
			return
		}
	}
	s.pts = append(s.pts, p)
}

// solve2 (Closest) tiles candidates around p0 at spacing d1, refines
// each with Solve1, deduplicates, and returns the one closest to p0. If
// the two lines are coincident, tiling would just rediscover the same
// shared geodesic from every seed, so that case is detected up front
// and resolved directly by projecting p0 onto it.
func (ix *IntersectEngine) solve2(lineX, lineY *GeodesicLine, p0 XPoint) XPoint {
	ix.cnt2++
	if c, off := ix.coincidence(lineX, lineY); c != 0 {
		return fixcoincident(p0, c, off)
	}
	set := &xpointSet{slop: ix.slop}
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			seed := XPoint{p0.X + float64(i)*ix.d1, p0.Y + float64(j)*ix.d1, 0}
			set.insert(ix.solve1(lineX, lineY, seed))
		}
	}
	if len(set.pts) == 0 {
		return XPoint{math.NaN(), math.NaN(), 0}
	}
	best := set.pts[0]
	bestDist := best.distTo(p0)
	for _, p := range set.pts[1:] {
		if d := p.distTo(p0); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

// solve3 (Next) rebases both lines at the given intersection p1 and
// tiles for the closest OTHER intersection at spacing d2, excluding the
// origin offset. If lineX and lineY are coincident, every point on the
// shared geodesic is an intersection, so there is no well-defined
// "other" one; rather than emit an arbitrary tile pick, this is
// signaled with a NaN point.
func (ix *IntersectEngine) solve3(lineX, lineY *GeodesicLine, p1 XPoint) XPoint {
	ix.cnt3++
	if c, _ := ix.coincidence(lineX, lineY); c != 0 {
		return XPoint{math.NaN(), math.NaN(), c}
	}

	_, ox := lineX.PositionAt(p1.X, LATITUDE|LONGITUDE|AZIMUTH)
	_, oy := lineY.PositionAt(p1.Y, LATITUDE|LONGITUDE|AZIMUTH)
	baseX := ix.ellip.Line(ox.Lat2, ox.Lon2, ox.Azi2, LineCaps)
	baseY := ix.ellip.Line(oy.Lat2, oy.Lon2, oy.Azi2, LineCaps)

	set := &xpointSet{slop: ix.slop}
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			if i == 0 && j == 0 {
				continue
			}
			seed := XPoint{float64(i) * ix.d2, float64(j) * ix.d2, 0}
			set.insert(ix.solve1(baseX, baseY, seed))
		}
	}
	if len(set.pts) == 0 {
		return XPoint{math.NaN(), math.NaN(), 0}
	}
	best := set.pts[0]
	for _, p := range set.pts[1:] {
		if p.dist() < best.dist() {
			best = p
		}
	}
	return XPoint{best.X + p1.X, best.Y + p1.Y, best.C}
}

// segmentmode reports which side of [0, sx] and [0, sy] the point p
// falls on: -1 before, 0 inside, +1 past, combined as 3*kx+ky.
func segmentmode(sx, sy float64, p XPoint) int {
	kx := 0
	switch {
	case p.X < 0:
		kx = -1
	case p.X > sx:
		kx = 1
	}
	ky := 0
	switch {
	case p.Y < 0:
		ky = -1
	case p.Y > sy:
		ky = 1
	}
	return 3*kx + ky
}

// solve4 (Segment) finds the closest intersection to the segment
// midpoints; if it falls outside either segment, it also tries the
// corner candidates (intersections of one line with a perpendicular
// through an endpoint of the other) and keeps whichever is better.
func (ix *IntersectEngine) solve4(lineX, lineY *GeodesicLine, x12, y12 float64) (XPoint, int) {
	ix.cnt4++
	p0 := XPoint{x12 / 2, y12 / 2, 0}
	best := ix.solve2(lineX, lineY, p0)
	mode := segmentmode(x12, y12, best)
	if mode == 0 {
		return best, mode
	}

	_, oy2 := lineY.PositionAt(y12, LATITUDE|LONGITUDE|AZIMUTH)
	perpY := ix.ellip.Line(oy2.Lat2, oy2.Lon2, angNormalize(oy2.Azi2+90), LineCaps)
	cornerY := ix.solve2(lineX, perpY, XPoint{x12, 0, 0})

	_, ox2 := lineX.PositionAt(x12, LATITUDE|LONGITUDE|AZIMUTH)
	perpX := ix.ellip.Line(ox2.Lat2, ox2.Lon2, angNormalize(ox2.Azi2+90), LineCaps)
	cornerX := ix.solve2(perpX, lineY, XPoint{0, y12, 0})
	cornerXPoint := XPoint{x12, cornerX.Y, 0}
	cornerYPoint := XPoint{cornerY.X, y12, 0}

	candidate := cornerYPoint
	if cornerXPoint.distTo(p0) < cornerYPoint.distTo(p0) {
		candidate = cornerXPoint
	}
	if candidate.valid() && candidate.distTo(p0) < best.distTo(p0) {
		best = candidate
		mode = segmentmode(x12, y12, best)
	}
	return best, mode
}

// solve5 (All) tiles broadly at spacing d3 over a square covering
// maxdist around p0, refines each tile center, deduplicates, filters by
// L1 distance, and sorts by distance from p0. Coincident lines
// intersect at every point of their shared geodesic, an uncountable set
// no discrete tiling could enumerate faithfully; rather than report an
// arbitrary, tiling-dependent sample of them, that case returns no
// points at all.
func (ix *IntersectEngine) solve5(lineX, lineY *GeodesicLine, maxdist float64, p0 XPoint) []XPoint {
	if c, _ := ix.coincidence(lineX, lineY); c != 0 {
		return nil
	}

	set := &xpointSet{slop: ix.slop}
	n := int(math.Ceil((maxdist+ix.slop)/ix.d3)) + 1
	for i := -n; i <= n; i++ {
		for j := -n; j <= n; j++ {
			seed := XPoint{p0.X + float64(i)*ix.d3, p0.Y + float64(j)*ix.d3, 0}
			set.insert(ix.solve1(lineX, lineY, seed))
		}
	}
	var out []XPoint
	for _, p := range set.pts {
		if p.distTo(p0) <= maxdist {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].distTo(p0) < out[j].distTo(p0) })
	return out
}

// Closest finds the intersection of two geodesics, each specified by a
// position and azimuth, nearest to p0.
func (ix *IntersectEngine) Closest(latX, lonX, aziX, latY, lonY, aziY float64, p0 XPoint) XPoint {
	lineX := ix.ellip.Line(latX, lonX, aziX, LineCaps)
	lineY := ix.ellip.Line(latY, lonY, aziY, LineCaps)
	return ix.ClosestLines(lineX, lineY, p0)
}

// ClosestLines is Closest given pre-built GeodesicLines.
func (ix *IntersectEngine) ClosestLines(lineX, lineY *GeodesicLine, p0 XPoint) XPoint {
	return ix.solve2(lineX, lineY, p0)
}

// Next finds the closest intersection, other than the one at the
// origin, to two geodesics that share a starting point but have
// (generally) different azimuths.
func (ix *IntersectEngine) Next(lat, lon, aziX, aziY float64) XPoint {
	lineX := ix.ellip.Line(lat, lon, aziX, LineCaps)
	lineY := ix.ellip.Line(lat, lon, aziY, LineCaps)
	return ix.solve3(lineX, lineY, XPoint{0, 0, 0})
}

// NextLines is Next given pre-built GeodesicLines and an existing
// intersection point p1 to search outward from.
func (ix *IntersectEngine) NextLines(lineX, lineY *GeodesicLine, p1 XPoint) XPoint {
	return ix.solve3(lineX, lineY, p1)
}

// Segment finds the intersection of the geodesic segments X1-X2 and
// Y1-Y2. segmode is 0 if the segments actually intersect; otherwise it
// encodes which side of which segment the (non-intersecting) closest
// point falls on, per segmentmode.
func (ix *IntersectEngine) Segment(latX1, lonX1, latX2, lonX2, latY1, lonY1, latY2, lonY2 float64) (XPoint, int) {
	_, outX := ix.ellip.Inverse(latX1, lonX1, latX2, lonX2, DISTANCE)
	_, outY := ix.ellip.Inverse(latY1, lonY1, latY2, lonY2, DISTANCE)
	lineX := ix.ellip.Line(latX1, lonX1, outX.Azi1, LineCaps)
	lineY := ix.ellip.Line(latY1, lonY1, outY.Azi1, LineCaps)
	x12, y12 := outX.S12, outY.S12
	return ix.solve4(lineX, lineY, x12, y12)
}

// SegmentLines is Segment given pre-built GeodesicLines and their
// (positive) segment lengths x12, y12.
func (ix *IntersectEngine) SegmentLines(lineX, lineY *GeodesicLine, x12, y12 float64) (XPoint, int) {
	return ix.solve4(lineX, lineY, x12, y12)
}

// All finds every intersection of two geodesics within maxdist (L1,
// meters) of p0, sorted by distance from p0.
func (ix *IntersectEngine) All(latX, lonX, aziX, latY, lonY, aziY, maxdist float64, p0 XPoint) []XPoint {
	lineX := ix.ellip.Line(latX, lonX, aziX, LineCaps)
	lineY := ix.ellip.Line(latY, lonY, aziY, LineCaps)
	return ix.AllLines(lineX, lineY, maxdist, p0)
}

// AllLines is All given pre-built GeodesicLines.
func (ix *IntersectEngine) AllLines(lineX, lineY *GeodesicLine, maxdist float64, p0 XPoint) []XPoint {
	return ix.solve5(lineX, lineY, maxdist, p0)
}

// Counts returns the advisory Solve0..Solve4 call counters. They are not
// part of the correctness contract and exist for tests/diagnostics.
func (ix *IntersectEngine) Counts() (cnt0, cnt1, cnt2, cnt3, cnt4 int64) {
	return ix.cnt0, ix.cnt1, ix.cnt2, ix.cnt3, ix.cnt4
}
