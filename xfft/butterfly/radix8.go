package butterfly

import "github.com/dspcore/xfft/xfft/scalar"

// Radix8Terminal returns an OptimizedMultipass hook that fuses the bottom
// three butterfly passes (depth 1,2,3 — block size 8) into a single
// traversal. The fused kernel is algebraically identical to three
// sequential calls to pass(d=1), pass(d=2), pass(d=3): it is derived by
// unrolling those three stages and substituting their (constant, known
// in advance) twiddle values, so it trades three passes over memory for
// one without changing any arithmetic. The needed rotation by
// c=sqrt(2)/2 at depth 3 is obtained from Cexpm1(3)/CexpmFrac(3,8)
// rather than a literal constant, so a custom Scalar implementation
// (fixed-point, arbitrary precision) that overrides those primitives
// never needs to also special-case this terminal.
func Radix8Terminal[T any](a scalar.Arith[T]) OptimizedMultipass[T] {
	return func(re, im []T, fromDepth, toDepth int, negateImag bool) int {
		return radix8Apply(a, re, im, fromDepth, toDepth, negateImag)
	}
}

// radix8Apply is the terminal's underlying logic, factored out of
// Radix8Terminal so runRec's built-in wiring can call it directly
// without allocating a closure on every recursive call.
func radix8Apply[T any](a scalar.Arith[T], re, im []T, fromDepth, toDepth int, negateImag bool) int {
	if fromDepth != 1 || toDepth < 3 {
		return 0
	}
	n := len(re)
	if n < 8 || n%8 != 0 {
		return 0
	}

	w1r, w1i := a.Cexpm1(3)
	w1r = a.Add(w1r, a.One())
	w2r, w2i := a.Cexpm1(2)
	w2r = a.Add(w2r, a.One())
	w3r, w3i := a.CexpmFrac(3, 8)
	w3r = a.Add(w3r, a.One())
	if negateImag {
		w1i, w2i, w3i = a.Neg(w1i), a.Neg(w2i), a.Neg(w3i)
	}

	numBlocks := n / 8
	for blk := 0; blk < numBlocks; blk++ {
		b := blk * 8
		radix8Kernel(a, re, im, b, w1r, w1i, w2r, w2i, w3r, w3i)
	}
	return 3
}

func radix8Kernel[T any](a scalar.Arith[T], re, im []T, b int, w1r, w1i, w2r, w2i, w3r, w3i T) {
	x0r, x0i := re[b+0], im[b+0]
	x1r, x1i := re[b+1], im[b+1]
	x2r, x2i := re[b+2], im[b+2]
	x3r, x3i := re[b+3], im[b+3]
	x4r, x4i := re[b+4], im[b+4]
	x5r, x5i := re[b+5], im[b+5]
	x6r, x6i := re[b+6], im[b+6]
	x7r, x7i := re[b+7], im[b+7]

	// stage 1 (depth 1, trivial twiddle)
	y0r, y0i := a.Add(x0r, x1r), a.Add(x0i, x1i)
	y1r, y1i := a.Sub(x0r, x1r), a.Sub(x0i, x1i)
	y2r, y2i := a.Add(x2r, x3r), a.Add(x2i, x3i)
	y3r, y3i := a.Sub(x2r, x3r), a.Sub(x2i, x3i)
	y4r, y4i := a.Add(x4r, x5r), a.Add(x4i, x5i)
	y5r, y5i := a.Sub(x4r, x5r), a.Sub(x4i, x5i)
	y6r, y6i := a.Add(x6r, x7r), a.Add(x6i, x7i)
	y7r, y7i := a.Sub(x6r, x7r), a.Sub(x6i, x7i)

	// stage 2 (depth 2, twiddles 1 and w2 = +-i)
	w2y3r, w2y3i := cmul(a, w2r, w2i, y3r, y3i)
	z0r, z0i := a.Add(y0r, y2r), a.Add(y0i, y2i)
	z2r, z2i := a.Sub(y0r, y2r), a.Sub(y0i, y2i)
	z1r, z1i := a.Add(y1r, w2y3r), a.Add(y1i, w2y3i)
	z3r, z3i := a.Sub(y1r, w2y3r), a.Sub(y1i, w2y3i)

	w2y7r, w2y7i := cmul(a, w2r, w2i, y7r, y7i)
	z4r, z4i := a.Add(y4r, y6r), a.Add(y4i, y6i)
	z6r, z6i := a.Sub(y4r, y6r), a.Sub(y4i, y6i)
	z5r, z5i := a.Add(y5r, w2y7r), a.Add(y5i, w2y7i)
	z7r, z7i := a.Sub(y5r, w2y7r), a.Sub(y5i, w2y7i)

	// stage 3 (depth 3, twiddles 1, w1, w2, w3)
	w1z5r, w1z5i := cmul(a, w1r, w1i, z5r, z5i)
	w2z6r, w2z6i := cmul(a, w2r, w2i, z6r, z6i)
	w3z7r, w3z7i := cmul(a, w3r, w3i, z7r, z7i)

	re[b+0], im[b+0] = a.Add(z0r, z4r), a.Add(z0i, z4i)
	re[b+4], im[b+4] = a.Sub(z0r, z4r), a.Sub(z0i, z4i)
	re[b+1], im[b+1] = a.Add(z1r, w1z5r), a.Add(z1i, w1z5i)
	re[b+5], im[b+5] = a.Sub(z1r, w1z5r), a.Sub(z1i, w1z5i)
	re[b+2], im[b+2] = a.Add(z2r, w2z6r), a.Add(z2i, w2z6i)
	re[b+6], im[b+6] = a.Sub(z2r, w2z6r), a.Sub(z2i, w2z6i)
	re[b+3], im[b+3] = a.Add(z3r, w3z7r), a.Add(z3i, w3z7i)
	re[b+7], im[b+7] = a.Sub(z3r, w3z7r), a.Sub(z3i, w3z7i)
}

func cmul[T any](a scalar.Arith[T], ar, ai, br, bi T) (T, T) {
	return a.Sub(a.Mul(ar, br), a.Mul(ai, bi)), a.Add(a.Mul(ar, bi), a.Mul(ai, br))
}
