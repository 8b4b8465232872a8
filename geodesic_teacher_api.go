package geodesic

import "math"

// Polygon accumulates the perimeter and (signed) area of a geodesic
// polygon or polyline by chaining Inverse solves between consecutive
// vertices. Adapted from the teacher's PolygonInit/AddPoint/AddEdge/
// Compute/Clear surface (geodesic.go), which wrapped the C geod_polygon
// accumulator; here the accumulation itself is done with the
// error-free sum transform (angle.go's sum, Karney's compensated
// summation idiom) applied directly to Inverse's S12/S12Area outputs,
// guarding against the precision loss many-sided polygons would
// otherwise suffer.
type Polygon struct {
	e        *Ellipsoid
	polyline bool
	num      int
	lat0, lon0 float64
	lat, lon   float64

	perimSum, perimErr float64
	areaSum, areaErr    float64
}

// PolygonInit initializes a polygon or (if polyline is set) a polyline
// accumulator for this ellipsoid.
func (e *Ellipsoid) PolygonInit(polyline bool) Polygon {
	return Polygon{e: e, polyline: polyline}
}

// AddPoint adds a vertex (lat, lon in degrees) to the polygon.
func (p *Polygon) AddPoint(lat, lon float64) {
	if p.num == 0 {
		p.lat0, p.lon0 = lat, lon
	} else {
		p.addEdgeTo(lat, lon)
	}
	p.lat, p.lon = lat, lon
	p.num++
}

// AddEdge adds an edge leaving the current point at azimuth azi
// (degrees) and length s (meters).
func (p *Polygon) AddEdge(azi, s float64) {
	if p.num == 0 {
		return
	}
	_, out := p.e.Direct(p.lat, p.lon, azi, s, LATITUDE|LONGITUDE|AREA)
	p.accumulate(s, out.S12Area)
	p.lat, p.lon = out.Lat2, out.Lon2
	p.num++
}

func (p *Polygon) addEdgeTo(lat, lon float64) {
	_, out := p.e.Inverse(p.lat, p.lon, lat, lon, DISTANCE|AREA)
	p.accumulate(out.S12, out.S12Area)
}

func (p *Polygon) accumulate(ds, darea float64) {
	p.perimSum, p.perimErr = sum(p.perimSum, ds+p.perimErr)
	p.areaSum, p.areaErr = sum(p.areaSum, darea+p.areaErr)
}

// Compute returns the accumulated area (square meters, for a polygon;
// zero for a polyline) and perimeter (meters), plus the vertex count.
// If clockwise is set, a clockwise traversal counts as positive area.
// If sign is set, a "wrong way" traversal returns a signed (small,
// negative-capable) area instead of the area of the rest of the earth.
func (p *Polygon) Compute(clockwise, sign bool) (area, perimeter float64, count int) {
	perim, perimErr := p.perimSum, p.perimErr
	areaSum, areaErr := p.areaSum, p.areaErr
	if !p.polyline && p.num > 1 {
		_, out := p.e.Inverse(p.lat, p.lon, p.lat0, p.lon0, DISTANCE|AREA)
		perim, perimErr = sum(perim, out.S12+perimErr)
		areaSum, areaErr = sum(areaSum, out.S12Area+areaErr)
	}
	if p.polyline {
		return 0, perim + perimErr, p.num
	}
	a := areaSum + areaErr
	areaEarth := 4 * math.Pi * p.e.AuthalicRadiusSquared()
	if !clockwise {
		a = -a
	}
	a = math.Mod(a, areaEarth)
	if a < 0 {
		a += areaEarth
	}
	if sign {
		if a > areaEarth/2 {
			a -= areaEarth
		} else if a <= -areaEarth/2 {
			a += areaEarth
		}
	}
	return a, perim + perimErr, p.num
}

// Clear resets the polygon so a new one can be accumulated.
func (p *Polygon) Clear() {
	*p = Polygon{e: p.e, polyline: p.polyline}
}
