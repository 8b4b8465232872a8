package geodesic

// Series expansions in the auxiliary parameter eps = k^2 / (2*(1+sqrt(1+k^2))+k^2).
//
// These are the Maxima-generated polynomial coefficients from
// GeographicLib's Geodesic class (order 6), ported from
// lazylynx/ggeodesic's geodesic.go (A1m1f, C1f, A2m1f, C2f, A3, C3, C4)
// and extended here with C1p (the inverse series used to recover sigma
// from the scaled distance tau, needed by GeodesicLine.Position in
// distance mode, which lazylynx's Inverse-only port never required).

import "math"

const geodesicOrder = 6
const nA1 = geodesicOrder
const nC1 = geodesicOrder
const nC1p = geodesicOrder
const nA2 = geodesicOrder
const nC2 = geodesicOrder
const nA3 = geodesicOrder
const nA3x = nA3
const nC3 = geodesicOrder
const nC3x = (nC3 * (nC3 - 1)) / 2
const nC4 = geodesicOrder
const nC4x = (nC4 * (nC4 + 1)) / 2

// polyval evaluates, by Horner's method, a polynomial of order N whose N+1
// coefficients start at p[s].
func polyval(N int, p []float64, s int, x float64) float64 {
	var y float64
	if N < 0 {
		return 0
	}
	y = p[s]
	for N > 0 {
		N--
		s++
		y = y*x + p[s]
	}
	return y
}

func cbrt(x float64) float64 {
	y := math.Pow(math.Abs(x), 1.0/3.0)
	switch {
	case x > 0:
		return y
	case x < 0:
		return -y
	default:
		return x
	}
}

func a1m1f(eps float64) float64 {
	coeff := []float64{1, 4, 64, 0, 256}
	m := nA1 / 2
	t := polyval(m, coeff, 0, eps*eps) / coeff[m+1]
	return (t + eps) / (1 - eps)
}

func c1f(eps float64, c []float64) {
	coeff := []float64{-1, 6, -16, 32, -9, 64, -128, 2048, 9, -16, 768, 3, -5, 512, -7, 1280, -7, 2048}
	eps2 := eps * eps
	d := eps
	o := 0
	for l := 1; l < nC1+1; l++ {
		m := (nC1 - l) / 2
		c[l] = d * polyval(m, coeff, o, eps2) / coeff[o+m+1]
		o += m + 2
		d *= eps
	}
}

// c1pf evaluates the C1' series used to invert tau -> sigma.
func c1pf(eps float64, c []float64) {
	coeff := []float64{
		205, -432, 768, 1536,
		4005, -4736, 3840, 12288,
		-225, 116, 384,
		-7173, 2695, 7680,
		3467, 7680,
		38081, 61440,
	}
	eps2 := eps * eps
	d := eps
	o := 0
	for l := 1; l < nC1p+1; l++ {
		m := (nC1p - l) / 2
		c[l] = d * polyval(m, coeff, o, eps2) / coeff[o+m+1]
		o += m + 2
		d *= eps
	}
}

func a2m1f(eps float64) float64 {
	coeff := []float64{-11, -28, -192, 0, 256}
	m := nA2 / 2
	t := polyval(m, coeff, 0, eps*eps) / coeff[m+1]
	return (t - eps) / (1 + eps)
}

func c2f(eps float64, c []float64) {
	coeff := []float64{1, 2, 16, 32, 35, 64, 384, 2048, 15, 80, 768, 7, 35, 512, 63, 1280, 77, 2048}
	eps2 := eps * eps
	d := eps
	o := 0
	for l := 1; l < nC2+1; l++ {
		m := (nC2 - l) / 2
		c[l] = d * polyval(m, coeff, o, eps2) / coeff[o+m+1]
		o += m + 2
		d *= eps
	}
}

// a3Coeff precomputes the n-dependent polynomial coefficients of A3 into
// a3x, given the ellipsoid's third flattening n.
func a3Coeff(n float64) []float64 {
	a3x := make([]float64, nA3x)
	coeff := []float64{-3, 128, -2, -3, 64, -1, -3, -1, 16, 3, -1, -2, 8, 1, -1, 2, 1, 1}
	o, k := 0, 0
	for j := nA3 - 1; j > -1; j-- {
		m := minInt(nA3-j-1, j)
		a3x[k] = polyval(m, coeff, o, n) / coeff[o+m+1]
		k++
		o += m + 2
	}
	return a3x
}

// c3Coeff precomputes the n-dependent polynomial coefficients of C3.
func c3Coeff(n float64) []float64 {
	c3x := make([]float64, nC3x)
	coeff := []float64{3, 128, 2, 5, 128, -1, 3, 3, 64, -1, 0, 1, 8, -1, 1, 4, 5, 256, 1, 3, 128, -3, -2, 3, 64, 1, -3, 2, 32, 7, 512, -10, 9, 384, 5, -9, 5, 192, 7, 512, -14, 7, 512, 21, 2560}
	o, k := 0, 0
	for l := 1; l < nC3; l++ {
		for j := nC3 - 1; j > l-1; j-- {
			m := minInt(nC3-j-1, j)
			c3x[k] = polyval(m, coeff, o, n) / coeff[o+m+1]
			k++
			o += m + 2
		}
	}
	return c3x
}

// c4Coeff precomputes the n-dependent polynomial coefficients of C4.
func c4Coeff(n float64) []float64 {
	c4x := make([]float64, nC4x)
	coeff := []float64{97, 15015, 1088, 156, 45045, -224, -4784, 1573, 45045, -10656, 14144, -4576, -858, 45045, 64, 624, -4576, 6864, -3003, 15015,
		100, 208, 572, 3432, -12012, 30030, 45045, 1, 9009, -2944, 468, 135135, 5792, 1040, -1287, 135135, 5952, -11648, 9152, -2574, 135135, -64, -624, 4576, -6864, 3003, 135135,
		8, 10725, 1856, -936, 225225, -8448, 4992, -1144, 225225, -1440, 4160, -4576, 1716, 225225,
		-136, 63063, 1024, -208, 105105, 3584, -3328, 1144, 315315, -128, 135135, -2560, 832, 405405, 128, 99099,
	}
	o, k := 0, 0
	for l := 0; l < nC4; l++ {
		for j := nC4 - 1; j > l-1; j-- {
			m := nC4 - j - 1
			c4x[k] = polyval(m, coeff, o, n) / coeff[o+m+1]
			k++
			o += m + 2
		}
	}
	return c4x
}

func a3f(a3x []float64, eps float64) float64 {
	return polyval(nA3-1, a3x, 0, eps)
}

func c3f(c3x []float64, eps float64, c []float64) {
	mult := 1.0
	o := 0
	for l := 1; l < nC3; l++ {
		m := nC3 - l - 1
		mult *= eps
		c[l] = mult * polyval(m, c3x, o, eps)
		o += m + 1
	}
}

func c4f(c4x []float64, eps float64, c []float64) {
	mult := 1.0
	o := 0
	for l := 0; l < nC4; l++ {
		m := nC4 - l - 1
		c[l] = mult * polyval(m, c4x, o, eps)
		o += m + 1
		mult *= eps
	}
}

// sinCosSeries evaluates, by Clenshaw summation,
//
//	sinp:  sum(c[i] * sin(2*i*x),     i, 1, n)
//	!sinp: sum(c[i] * cos((2*i+1)*x), i, 0, n-1)
//
// c[0] is unused in the sin case. The recurrence runs from the high index
// down with two interleaved accumulators, as required by spec (avoids the
// catastrophic cancellation a naive forward summation would suffer).
func sinCosSeries(sinp bool, sinx, cosx float64, c []float64) float64 {
	k := len(c)
	n := k
	if sinp {
		n--
	}
	ar := 2 * (cosx - sinx) * (cosx + sinx) // 2*cos(2x)
	var y0, y1 float64
	if n&1 != 0 {
		k--
		y0 = c[k]
	}
	n /= 2
	for n > 0 {
		n--
		k--
		y1 = ar*y0 - y1 + c[k]
		k--
		y0 = ar*y1 - y0 + c[k]
	}
	if sinp {
		return 2 * sinx * cosx * y0
	}
	return cosx * (y0 - y1)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
