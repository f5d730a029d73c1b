// Package butterfly implements the Cooley-Tukey decimation-in-time
// scheduler: it consumes an already bit-reversed array and runs passes
// from depth 1 up to log2n, each combining two halves of a block with
// twiddle factors from the oracle in xfft/twiddle, with an optional
// depth-split top-level recursion and an LBUF-bounded twiddle buffer for
// large transforms.
package butterfly

import (
	"github.com/dspcore/xfft/xfft/scalar"
	"github.com/dspcore/xfft/xfft/twiddle"
)

// Options configures engine limits.
type Options struct {
	// LBUF bounds the twiddle buffer: passes of depth <= LBUF+1 (whose
	// 2^(d-1) twiddles fit in 2^LBUF entries) materialize the full twiddle
	// set; deeper passes compose a bounded 2^LBUF-entry
	// table with an incrementally updated multiplier pair instead of
	// allocating 2^d twiddles. Range 2..n, default 9.
	LBUF int
	// TopSplitThreshold is the log2n above which the top-level schedule
	// recursively transforms each half before a single joining pass, for
	// cache locality on large transforms.
	TopSplitThreshold int
}

// DefaultOptions returns the documented defaults (LBUF=9, split above
// log2n=12).
func DefaultOptions() Options {
	return Options{LBUF: 9, TopSplitThreshold: 12}
}

// OptimizedMultipass is an optional hook: given the remaining depth to
// process (starting at the bottom, ascending), it may consume
// one or more passes (e.g. a fused SIMD radix-8 terminal) and reports how
// many it handled. Passes it does not consume fall through to the scalar
// path. A nil hook means "scalar only".
type OptimizedMultipass[T any] func(re, im []T, fromDepth, toDepth int, negateImag bool) (consumed int)

// Run executes the full butterfly schedule over a bit-reversed, unit
// stride pair of real/imaginary arrays of length 2^log2n. negateImag
// selects the forward DFT twiddle sign convention (exp(-2*pi*i*k/N)) when
// true, the inverse convention (exp(+2*pi*i*k/N)) when false.
func Run[T any](a scalar.Arith[T], re, im []T, log2n int, negateImag bool, opts Options, hook OptimizedMultipass[T]) {
	if log2n <= 0 {
		return
	}
	if opts.LBUF < 2 {
		opts.LBUF = 2
	}
	runRec(a, re, im, log2n, negateImag, opts, hook, 1)
}

// runRec implements the top-level schedule: split-and-recurse above
// TopSplitThreshold, otherwise a straight ascending multipass.
func runRec[T any](a scalar.Arith[T], re, im []T, log2n int, negateImag bool, opts Options, hook OptimizedMultipass[T], fromDepth int) {
	if log2n > opts.TopSplitThreshold {
		half := 1 << uint(log2n-1)
		runRec(a, re[:half], im[:half], log2n-1, negateImag, opts, hook, 1)
		runRec(a, re[half:], im[half:], log2n-1, negateImag, opts, hook, 1)
		pass(a, re, im, log2n, negateImag, opts)
		return
	}

	d := fromDepth
	if hook != nil {
		consumed := hook(re, im, d, log2n, negateImag)
		d += consumed
	}
	// Built-in radix-8 terminal: applies only when the pluggable hook
	// left the bottom three passes (depth 1-3) untouched and the block
	// is big enough to hold them, falling through harmlessly otherwise.
	if consumed := radix8Apply(a, re, im, d, log2n, negateImag); consumed > 0 {
		d += consumed
	}
	for ; d <= log2n; d++ {
		pass(a, re, im, d, negateImag, opts)
	}
}

// pass runs one butterfly pass at depth d: the array is treated as
// n/2^d independent blocks of size 2^d, each combining its two halves of
// size h=2^(d-1) via twiddles exp(negateImag? -1 : +1 * 2*pi*i*k/2^d).
//
// When d-1 <= LBUF the full h-entry twiddle set is materialized directly.
// When d-1 > LBUF, only a 2^LBUF-entry table is materialized; the remaining
// (d-1-LBUF) high bits of the twiddle index are covered by an incrementally
// updated multiplier (curR, curI), advanced once per LBUF-sized block of
// indices by a single composed rotation step. This keeps twiddle storage
// bounded at O(2^LBUF) regardless of d while producing full-accuracy
// twiddle values (a direct decomposition of the recursive half-block
// scheme this replaces; see DESIGN.md).
func pass[T any](a scalar.Arith[T], re, im []T, d int, negateImag bool, opts Options) {
	n := len(re)
	blockSize := 1 << uint(d)
	h := blockSize / 2
	numBlocks := n / blockSize

	l := d - 1
	if l > opts.LBUF {
		l = opts.LBUF
	}
	wr, wi := twiddle.Expand(a, d, l, negateImag)
	bufSize := 1 << uint(l)

	var stepR, stepI T
	haveStep := h > bufSize
	if haveStep {
		sr, si := a.Cexpm1(d - l)
		if negateImag {
			si = a.Neg(si)
		}
		stepR, stepI = a.Add(sr, a.One()), si
	}

	for blk := 0; blk < numBlocks; blk++ {
		base := blk * blockSize
		hiBase := base + h

		if !haveStep {
			for k := 0; k < h; k++ {
				butterflyAt(a, re, im, base+k, hiBase+k, wr[k], wi[k])
			}
			continue
		}

		curR, curI := a.One(), a.Zero()
		outerCount := h / bufSize
		for outer := 0; outer < outerCount; outer++ {
			for k := 0; k < bufSize; k++ {
				twR := a.Sub(a.Mul(wr[k], curR), a.Mul(wi[k], curI))
				twI := a.Add(a.Mul(wr[k], curI), a.Mul(wi[k], curR))
				idx := outer*bufSize + k
				butterflyAt(a, re, im, base+idx, hiBase+idx, twR, twI)
			}
			nr := a.Sub(a.Mul(curR, stepR), a.Mul(curI, stepI))
			ni := a.Add(a.Mul(curR, stepI), a.Mul(curI, stepR))
			curR, curI = nr, ni
		}
	}
}

// butterflyAt combines the pair (re[lo],im[lo]) and (re[hi],im[hi]) using
// twiddle (twR, twI): x = W * H; L,H <- L+x, L-x.
func butterflyAt[T any](a scalar.Arith[T], re, im []T, lo, hi int, twR, twI T) {
	hr, hi2 := re[hi], im[hi]
	xr := a.Sub(a.Mul(twR, hr), a.Mul(twI, hi2))
	xi := a.Add(a.Mul(twR, hi2), a.Mul(twI, hr))
	lr, li := re[lo], im[lo]
	re[hi] = a.Sub(lr, xr)
	im[hi] = a.Sub(li, xi)
	re[lo] = a.Add(lr, xr)
	im[lo] = a.Add(li, xi)
}
