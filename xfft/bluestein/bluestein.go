// Package bluestein implements the chirp-z transform: an arbitrary-length
// complex DFT expressed as a power-of-two convolution, for sizes the
// radix-2 engine in xfft/butterfly cannot handle directly, built from the
// same xfft/bitrev and xfft/butterfly primitives used by the power-of-two
// path rather than a separate O(n^2) direct DFT. The chirp itself is
// computed here from scalar.Arith.CexpmFrac, not from
// twiddle.BluesteinTwiddles.
package bluestein

import (
	"sync"

	"github.com/dspcore/xfft/xfft/bitrev"
	"github.com/dspcore/xfft/xfft/butterfly"
	"github.com/dspcore/xfft/xfft/scalar"
)

// Options configures the convolution sub-FFT engine; a zero value is
// valid and uses xfft/butterfly and xfft/bitrev's own defaults.
type Options[T any] struct {
	Butterfly butterfly.Options
	Bitrev    bitrev.Options
	Hook      butterfly.OptimizedMultipass[T]
	// Alloc/Free override the scratch buffer pool (default: a process-wide
	// sync.Pool of []T, one pool per element width). Passing both lets a
	// caller reuse xfft.Options' Allocator/Deallocator hooks.
	Alloc func(n int) []T
	Free  func([]T)
}

// scratchPoolF64/F32 back the zero-value Options' default scratch
// source: pooled, per-call scratch rather than a fresh allocation every
// call, pooling typed []T slices directly instead of raw []byte since
// scratch is sized per call, not per persistent plan.
var scratchPoolF64 = sync.Pool{New: func() any { return []float64(nil) }}
var scratchPoolF32 = sync.Pool{New: func() any { return []float32(nil) }}

func defaultAlloc[T any](n int) []T {
	switch any(*new(T)).(type) {
	case float64:
		v, _ := scratchPoolF64.Get().([]float64)
		if cap(v) < n {
			v = make([]float64, n)
		}
		return any(v[:n]).([]T)
	case float32:
		v, _ := scratchPoolF32.Get().([]float32)
		if cap(v) < n {
			v = make([]float32, n)
		}
		return any(v[:n]).([]T)
	default:
		return make([]T, n)
	}
}

func defaultFree[T any](s []T) {
	switch v := any(s).(type) {
	case []float64:
		scratchPoolF64.Put(v[:0])
	case []float32:
		scratchPoolF32.Put(v[:0])
	}
}

// nextPow2 returns the smallest m = 2^log2m >= n, and log2m.
func nextPow2(n int) (m, log2m int) {
	m, log2m = 1, 0
	for m < n {
		m <<= 1
		log2m++
	}
	return m, log2m
}

// Transform computes the length-n complex DFT of (re, im) in place using
// the chirp-z/Bluestein method: premultiply by the chirp, zero-pad to a
// convolution length m = next power of two >= 2n-1, convolve against the
// conjugate chirp kernel via two forward FFTs, one pointwise multiply and
// one inverse FFT, then postmultiply by the chirp again. negateImag
// selects the forward (true) or inverse (false) DFT convention, exactly
// as xfft/butterfly.Run.
func Transform[T any](a scalar.Arith[T], re, im []T, negateImag bool, opts Options[T]) {
	n := len(re)
	if n <= 1 {
		return
	}
	alloc, free := opts.Alloc, opts.Free
	if alloc == nil {
		alloc = defaultAlloc[T]
	}
	if free == nil {
		free = defaultFree[T]
	}

	chirpR, chirpI := chirp(a, n, negateImag)

	m, log2m := nextPow2(2*n - 1)

	ar := alloc(m)
	ai := alloc(m)
	br := alloc(m)
	bi := alloc(m)
	defer free(ar)
	defer free(ai)
	defer free(br)
	defer free(bi)
	for i := range ar {
		ar[i], ai[i] = a.Zero(), a.Zero()
		br[i], bi[i] = a.Zero(), a.Zero()
	}

	// a[k] = x[k] * chirp[k]  (chirp premultiply)
	for k := 0; k < n; k++ {
		cr, ci := chirpR[k], chirpI[k]
		ar[k] = a.Sub(a.Mul(re[k], cr), a.Mul(im[k], ci))
		ai[k] = a.Add(a.Mul(re[k], ci), a.Mul(im[k], cr))
	}

	// b[k] = conj(chirp[k]) for k in (-(n-1)..n-1), wrapped into [0,m);
	// chirp[-k] == chirp[k] (it depends on k^2), so both the k and m-k
	// slots take the same conjugated value.
	br[0], bi[0] = chirpR[0], a.Neg(chirpI[0])
	for k := 1; k < n; k++ {
		cr, ci := chirpR[k], a.Neg(chirpI[k])
		br[k], bi[k] = cr, ci
		br[m-k], bi[m-k] = cr, ci
	}

	forwardPow2(a, ar, ai, log2m, opts)
	forwardPow2(a, br, bi, log2m, opts)

	for k := 0; k < m; k++ {
		pr := a.Sub(a.Mul(ar[k], br[k]), a.Mul(ai[k], bi[k]))
		pi := a.Add(a.Mul(ar[k], bi[k]), a.Mul(ai[k], br[k]))
		ar[k], ai[k] = pr, pi
	}

	inversePow2(a, ar, ai, log2m, opts)

	invM := a.InvPow2(log2m)

	for k := 0; k < n; k++ {
		vr := a.Mul(ar[k], invM)
		vi := a.Mul(ai[k], invM)
		cr, ci := chirpR[k], chirpI[k]
		re[k] = a.Sub(a.Mul(vr, cr), a.Mul(vi, ci))
		im[k] = a.Add(a.Mul(vr, ci), a.Mul(vi, cr))
	}
}

// chirp returns w[k] = exp(sign * i * pi * k^2 / n) for k = 0..n-1, the
// Bluestein chirp sequence, computed via the CexpmFrac primitive rather
// than a running recurrence, to keep each entry's error independent of k.
func chirp[T any](a scalar.Arith[T], n int, negateImag bool) (wr, wi []T) {
	wr = make([]T, n)
	wi = make([]T, n)
	for k := 0; k < n; k++ {
		k2 := (k * k) % (2 * n)
		r, i := a.CexpmFrac(k2, 2*n)
		r = a.Add(r, a.One())
		if negateImag {
			i = a.Neg(i)
		}
		wr[k], wi[k] = r, i
	}
	return wr, wi
}

func forwardPow2[T any](a scalar.Arith[T], re, im []T, log2m int, opts Options[T]) {
	bitrev.PermuteInPlace(re, 1, log2m, opts.Bitrev)
	bitrev.PermuteInPlace(im, 1, log2m, opts.Bitrev)
	butterfly.Run(a, re, im, log2m, true, opts.Butterfly, opts.Hook)
}

func inversePow2[T any](a scalar.Arith[T], re, im []T, log2m int, opts Options[T]) {
	bitrev.PermuteInPlace(re, 1, log2m, opts.Bitrev)
	bitrev.PermuteInPlace(im, 1, log2m, opts.Bitrev)
	butterfly.Run(a, re, im, log2m, false, opts.Butterfly, opts.Hook)
}
