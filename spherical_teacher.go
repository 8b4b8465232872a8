// Spherical geodesy helpers used as the radius-R great-circle seed for
// the intersect engine's Solve0.
//
// Copyright (c) Joshua Baker (2021) and licensed under the MIT License.
//
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - */
/* Latitude/longitude spherical geodesy tools   (c) Chris Veness 2002-2019 */
/*                                                             MIT Licence */
/* www.movable-type.co.uk/scripts/latlong.html                             */
/* www.movable-type.co.uk/scripts/geodesy-library.html#latlon-spherical    */
/* - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - - */

package geodesic

import "math"

const sphRadians = math.Pi / 180
const sphDegrees = 180 / math.Pi

func destination(radius float64, lat1, lon1, meters, bearingDegrees float64) (lat2, lon2 float64) {
	// sinφ2 = sinφ1⋅cosδ + cosφ1⋅sinδ⋅cosθ
	// tanΔλ = sinθ⋅sinδ⋅cosφ1 / cosδ−sinφ1⋅sinφ2
	// see mathforum.org/library/drmath/view/52049.html for derivation
	δ := meters / radius
	θ := bearingDegrees * sphRadians
	φ1 := lat1 * sphRadians
	λ1 := lon1 * sphRadians
	φ2 := math.Asin(math.Sin(φ1)*math.Cos(δ) +
		math.Cos(φ1)*math.Sin(δ)*math.Cos(θ))
	λ2 := λ1 + math.Atan2(math.Sin(θ)*math.Sin(δ)*math.Cos(φ1),
		math.Cos(δ)-math.Sin(φ1)*math.Sin(φ2))
	λ2 = math.Mod(λ2+3*math.Pi, 2*math.Pi) - math.Pi // normalise to -180..+180°
	return φ2 * sphDegrees, λ2 * sphDegrees
}

func distance(radius float64, lat1, lon1, lat2, lon2 float64) float64 {
	// haversine formula
	φ1 := lat1 * sphRadians
	λ1 := lon1 * sphRadians
	φ2 := lat2 * sphRadians
	λ2 := lon2 * sphRadians
	Δφ := φ2 - φ1
	Δλ := λ2 - λ1
	sΔφ2 := math.Sin(Δφ / 2)
	sΔλ2 := math.Sin(Δλ / 2)
	haver := sΔφ2*sΔφ2 + math.Cos(φ1)*math.Cos(φ2)*sΔλ2*sΔλ2
	return radius * 2 * math.Asin(math.Sqrt(haver))
}

func bearing(lat1, lon1, lat2, lon2 float64) float64 {
	// tanθ = sinΔλ⋅cosφ2 / cosφ1⋅sinφ2 − sinφ1⋅cosφ2⋅cosΔλ
	// see mathforum.org/library/drmath/view/55417.html for derivation
	φ1 := lat1 * sphRadians
	φ2 := lat2 * sphRadians
	Δλ := (lon2 - lon1) * sphRadians
	y := math.Sin(Δλ) * math.Cos(φ2)
	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(Δλ)
	θ := math.Atan2(y, x)
	return wrap180(θ * sphDegrees)
}

func wrap180(degs float64) float64 {
	if degs < -180 || degs > 180 {
		degs = math.Mod(degs, 360)
		if degs < -180 {
			degs += 360
		} else if degs > 180 {
			degs -= 360
		}
	}
	return degs
}

// greatCircleIntersect finds the intersection of the two great circles
// through (lat1,lon1) on bearing brng1 and through (lat2,lon2) on
// bearing brng2, generalizing the point-to-point bearing/destination
// trigonometry above (Ed Williams' aviation-formulary intersection
// construction) from a single pair of points to a pair of
// parametrized lines. ok is false for (near-)coincident or divergent
// great circles, in which case lat3/lon3 are meaningless.
func greatCircleIntersect(lat1, lon1, brng1, lat2, lon2, brng2 float64) (lat3, lon3 float64, ok bool) {
	φ1, λ1 := lat1*sphRadians, lon1*sphRadians
	φ2, λ2 := lat2*sphRadians, lon2*sphRadians
	θ1, θ2 := brng1*sphRadians, brng2*sphRadians
	Δφ := φ2 - φ1
	Δλ := λ2 - λ1

	sΔφ2, sΔλ2 := math.Sin(Δφ/2), math.Sin(Δλ/2)
	sinδ12sq := sΔφ2*sΔφ2 + math.Cos(φ1)*math.Cos(φ2)*sΔλ2*sΔλ2
	δ12 := 2 * math.Asin(math.Sqrt(sinδ12sq))
	if math.Abs(δ12) < 1e-15 {
		if math.Abs(math.Sin(θ1-θ2)) < 1e-15 {
			return 0, 0, false // same start point and same great circle
		}
		return lat1, lon1, true // the shared start point is the crossing
	}
	sinδ12, cosδ12 := math.Sin(δ12), math.Cos(δ12)

	cosθa := (math.Sin(φ2) - math.Sin(φ1)*cosδ12) / (sinδ12 * math.Cos(φ1))
	cosθb := (math.Sin(φ1) - math.Sin(φ2)*cosδ12) / (sinδ12 * math.Cos(φ2))
	θa := math.Acos(math.Max(-1, math.Min(1, cosθa)))
	θb := math.Acos(math.Max(-1, math.Min(1, cosθb)))

	var θ12, θ21 float64
	if math.Sin(Δλ) > 0 {
		θ12, θ21 = θa, 2*math.Pi-θb
	} else {
		θ12, θ21 = 2*math.Pi-θa, θb
	}

	α1 := math.Mod(θ1-θ12+math.Pi, 2*math.Pi) - math.Pi
	α2 := math.Mod(θ21-θ2+math.Pi, 2*math.Pi) - math.Pi
	if math.Sin(α1) == 0 && math.Sin(α2) == 0 {
		return 0, 0, false // infinitely many intersections (coincident)
	}
	if math.Sin(α1)*math.Sin(α2) < 0 {
		return 0, 0, false // great circles don't intersect on this branch
	}

	cosα3 := -math.Cos(α1)*math.Cos(α2) + math.Sin(α1)*math.Sin(α2)*cosδ12
	δ13 := math.Atan2(sinδ12*math.Sin(α1)*math.Sin(α2), math.Cos(α2)+math.Cos(α1)*cosα3)

	φ3 := math.Asin(math.Sin(φ1)*math.Cos(δ13) + math.Cos(φ1)*math.Sin(δ13)*math.Cos(θ1))
	Δλ13 := math.Atan2(math.Sin(θ1)*math.Sin(δ13)*math.Cos(φ1), math.Cos(δ13)-math.Sin(φ1)*math.Sin(φ3))
	λ3 := λ1 + Δλ13

	return φ3 * sphDegrees, wrap180(λ3 * sphDegrees), true
}
