package scalar

import "math"

// Float64Arith implements Arith[float64] using a precomputed small-angle
// table for k in [0, MaxTableK) and a reverse-Horner Taylor expansion in
// terms of exp(ix)-1 for angles finer than the table covers.
type Float64Arith struct{}

func (Float64Arith) Zero() float64         { return 0 }
func (Float64Arith) One() float64          { return 1 }
func (Float64Arith) Add(a, b float64) float64 { return a + b }
func (Float64Arith) Sub(a, b float64) float64 { return a - b }
func (Float64Arith) Mul(a, b float64) float64 { return a * b }
func (Float64Arith) Neg(a float64) float64    { return -a }
func (Float64Arith) IsOne(a float64) bool     { return a == 1 }
func (Float64Arith) InvPow2(n int) float64    { return math.Ldexp(1, -n) }

var float64Cexpm1Table [MaxTableK][2]float64

func init() {
	for k := 0; k < MaxTableK; k++ {
		theta := 2 * math.Pi / float64(int64(1)<<uint(k))
		s, c := math.Sincos(theta)
		float64Cexpm1Table[k][0] = c - 1
		float64Cexpm1Table[k][1] = s
	}
	// exp(2*pi*i) - 1 is exactly zero; Sincos of the rounded 2*pi leaves a
	// residue of about -2.4e-16 in the imaginary part.
	float64Cexpm1Table[0] = [2]float64{0, 0}
}

func (Float64Arith) Cexpm1(k int) (re, im float64) {
	if k >= 0 && k < MaxTableK {
		e := float64Cexpm1Table[k]
		return e[0], e[1]
	}
	theta := 2 * math.Pi / float64(int64(1)<<uint(k))
	return taylorCexpm1F64(theta)
}

func (Float64Arith) CexpmFrac(p, q int) (re, im float64) {
	theta := cexpmFracAngle(p, q)
	if math.Abs(theta) < 0.05 {
		return taylorCexpm1F64(theta)
	}
	s, c := math.Sincos(theta)
	return c - 1, s
}

// cexpmFracAngle reduces 2*pi*p/q into (-pi, pi] to keep the Taylor path's
// small-angle assumption valid and to avoid catastrophic cancellation in
// the modulo reduction itself.
func cexpmFracAngle(p, q int) float64 {
	// reduce p mod q first using integers, exact for the fraction itself
	pm := p % q
	if pm < 0 {
		pm += q
	}
	theta := 2 * math.Pi * float64(pm) / float64(q)
	if theta > math.Pi {
		theta -= 2 * math.Pi
	}
	return theta
}

// taylorCexpm1F64 evaluates exp(i*x)-1 via reverse Horner in x^2, real part
// to 8 terms and imaginary part to 7 terms.
func taylorCexpm1F64(x float64) (re, im float64) {
	x2 := x * x

	// cos(x)-1 coefficients, k=1..8, c_k = (-1)^k / (2k)!
	re = cosCoefF64[7]
	for i := 6; i >= 0; i-- {
		re = re*x2 + cosCoefF64[i]
	}
	re *= x2

	// sin(x) coefficients, k=0..6, d_k = (-1)^k / (2k+1)!
	im = sinCoefF64[6]
	for i := 5; i >= 0; i-- {
		im = im*x2 + sinCoefF64[i]
	}
	im *= x

	return re, im
}

var cosCoefF64 = [8]float64{
	-1.0 / 2,
	1.0 / 24,
	-1.0 / 720,
	1.0 / 40320,
	-1.0 / 3628800,
	1.0 / 479001600,
	-1.0 / 87178291200,
	1.0 / 20922789888000,
}

var sinCoefF64 = [7]float64{
	1,
	-1.0 / 6,
	1.0 / 120,
	-1.0 / 5040,
	1.0 / 362880,
	-1.0 / 39916800,
	1.0 / 6227020800,
}
