// Package twiddle implements a twiddle-factor oracle: it expands
// exp(2*pi*i*k/2^N) for k in [0, 2^L) via a doubling recurrence seeded by
// scalar.Arith.Cexpm1, and a companion routine that builds a length-2n
// twiddle set from CexpmFrac plus conjugate symmetry (xfft/bluestein
// computes its chirp separately and does not call it). The doubling recurrence
// keeps the accuracy bound at O(log N) ULP instead of the O(N)
// accumulated rounding a naive per-k sin/cos call would produce.
package twiddle

import "github.com/dspcore/xfft/xfft/scalar"

// Expand returns exp(2*pi*i*k/2^N) for k = 0..2^L-1, i.e. the full set of
// twiddle factors needed by a radix-2 butterfly pass of depth N, truncated
// to an expansion width L (L <= N). When negateImag is true the imaginary
// precomputation is negated, producing exp(-2*pi*i*k/2^N) — the DFT
// forward-transform convention; negateImag=false yields the inverse
// convention exp(+2*pi*i*k/2^N). Callers pick the flag, not the other way
// around: see xfft/butterfly and xfft/transform for the direction wiring.
func Expand[T any](a scalar.Arith[T], n, l int, negateImag bool) (re, im []T) {
	size := 1 << uint(l)
	re = make([]T, size)
	im = make([]T, size)
	// re[0], im[0] start in the "-1" shifted form: the k=0 twiddle is
	// exactly 1+0i, whose shifted real part is 0.
	re[0] = a.Zero()
	im[0] = a.Zero()

	for i := 0; i < l; i++ {
		wr, wi := a.Cexpm1(n - i)
		if negateImag {
			wi = a.Neg(wi)
		}
		half := 1 << uint(i)
		for j := 0; j < half; j++ {
			rj, ij := re[j], im[j]
			re[half+j] = a.Add(a.Sub(a.Mul(wr, rj), a.Mul(wi, ij)), a.Add(wr, rj))
			im[half+j] = a.Add(a.Add(a.Mul(wi, rj), a.Mul(wr, ij)), a.Add(wi, ij))
		}
	}

	one := a.One()
	for k := range re {
		re[k] = a.Add(re[k], one)
	}
	return re, im
}

// BluesteinTwiddles returns the length-2n twiddle set exp(2*pi*i*m/(2n))
// for m = 0..2n-1. No other package calls it: xfft/bluestein computes its
// chirp and kernel directly from CexpmFrac. The first half is built from a doubling
// ladder of CexpmFrac evaluations composed by bit decomposition; the
// second half is filled by conjugate symmetry,
// exp(2*pi*i*(q-m)/q) = conj(exp(2*pi*i*m/q)).
func BluesteinTwiddles[T any](a scalar.Arith[T], n int) (tr, ti []T) {
	q := 2 * n
	tr = make([]T, q)
	ti = make([]T, q)
	tr[0] = a.One()
	ti[0] = a.Zero()
	if q == 1 {
		return tr, ti
	}

	half := q / 2

	bits := 0
	for (1 << uint(bits)) <= half {
		bits++
	}
	ladderRe := make([]T, bits)
	ladderIm := make([]T, bits)
	for i := 0; i < bits; i++ {
		dr, di := a.CexpmFrac(1<<uint(i), q)
		ladderRe[i] = a.Add(dr, a.One())
		ladderIm[i] = di
	}

	for m := 1; m <= half; m++ {
		accRe, accIm := a.One(), a.Zero()
		for i := 0; i < bits; i++ {
			if m&(1<<uint(i)) == 0 {
				continue
			}
			lr, li := ladderRe[i], ladderIm[i]
			newRe := a.Sub(a.Mul(accRe, lr), a.Mul(accIm, li))
			newIm := a.Add(a.Mul(accRe, li), a.Mul(accIm, lr))
			accRe, accIm = newRe, newIm
		}
		tr[m] = accRe
		ti[m] = accIm
	}

	for m := half + 1; m < q; m++ {
		tr[m] = tr[q-m]
		ti[m] = a.Neg(ti[q-m])
	}

	return tr, ti
}
