package xfft

import (
	"math"
	"math/rand"
	"testing"
)

func bruteForceDFT(xr, xi []float64, negateImag bool) (yr, yi []float64) {
	n := len(xr)
	yr = make([]float64, n)
	yi = make([]float64, n)
	sign := 1.0
	if negateImag {
		sign = -1.0
	}
	for j := 0; j < n; j++ {
		var sr, si float64
		for k := 0; k < n; k++ {
			theta := sign * 2 * math.Pi * float64(j*k) / float64(n)
			c, s := math.Cos(theta), math.Sin(theta)
			sr += xr[k]*c - xi[k]*s
			si += xr[k]*s + xi[k]*c
		}
		yr[j], yi[j] = sr, si
	}
	return yr, yi
}

func randomSignal(rng *rand.Rand, n int) (re, im []float64) {
	re = make([]float64, n)
	im = make([]float64, n)
	for i := range re {
		re[i] = rng.Float64()*2 - 1
		im[i] = rng.Float64()*2 - 1
	}
	return re, im
}

// TestRoundTrip checks that a forward transform followed by an inverse
// transform recovers the original input, including the boundary sizes
// n=1,2,4,5,6,8 and the random sizes 7,13,100,1000.
func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{1, 2, 4, 5, 6, 8, 7, 13, 100, 1000} {
		xr, xi := randomSignal(rng, n)
		re := append([]float64{}, xr...)
		im := append([]float64{}, xi...)
		fre := make([]float64, n)
		fim := make([]float64, n)
		if err := ForwardSplit(re, im, fre, fim, n, 1.0, Options[float64]{}); err != nil {
			t.Fatalf("n=%d forward: %v", n, err)
		}
		ire := make([]float64, n)
		iim := make([]float64, n)
		if err := InverseSplit(fre, fim, ire, iim, n, 1.0/float64(n), Options[float64]{}); err != nil {
			t.Fatalf("n=%d inverse: %v", n, err)
		}
		for i := 0; i < n; i++ {
			if math.Abs(ire[i]-xr[i]) > 1e-6 || math.Abs(iim[i]-xi[i]) > 1e-6 {
				t.Fatalf("n=%d i=%d: round trip (%v,%v), want (%v,%v)", n, i, ire[i], iim[i], xr[i], xi[i])
			}
		}
	}
}

// TestBruteForceEquivalence cross-checks against a direct DFT sum.
func TestBruteForceEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, n := range []int{1, 2, 4, 5, 6, 8, 7, 13} {
		xr, xi := randomSignal(rng, n)
		wantRe, wantIm := bruteForceDFT(xr, xi, true)
		gotRe := make([]float64, n)
		gotIm := make([]float64, n)
		if err := ForwardSplit(xr, xi, gotRe, gotIm, n, 1.0, Options[float64]{}); err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		for i := 0; i < n; i++ {
			if math.Abs(gotRe[i]-wantRe[i]) > 1e-6 || math.Abs(gotIm[i]-wantIm[i]) > 1e-6 {
				t.Fatalf("n=%d i=%d: got (%v,%v), want (%v,%v)", n, i, gotRe[i], gotIm[i], wantRe[i], wantIm[i])
			}
		}
	}
}

// TestStrideInvariance checks that a transform over a strided view of a
// larger buffer matches the same data compacted and run through the
// unit-stride split entry point.
func TestStrideInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	n := 16
	const stride = 3
	reBuf := make([]float64, n*stride)
	imBuf := make([]float64, n*stride)
	xr := make([]float64, n)
	xi := make([]float64, n)
	for i := 0; i < n; i++ {
		xr[i] = rng.Float64()*2 - 1
		xi[i] = rng.Float64()*2 - 1
		reBuf[i*stride] = xr[i]
		imBuf[i*stride] = xi[i]
	}
	wantRe := make([]float64, n)
	wantIm := make([]float64, n)
	if err := ForwardSplit(xr, xi, wantRe, wantIm, n, 1.0, Options[float64]{}); err != nil {
		t.Fatal(err)
	}

	gotReBuf := make([]float64, n*stride)
	gotImBuf := make([]float64, n*stride)
	err := ForwardStrided(reBuf, imBuf, stride, stride, gotReBuf, gotImBuf, stride, stride, n, 1.0, Options[float64]{})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if math.Abs(gotReBuf[i*stride]-wantRe[i]) > 1e-6 || math.Abs(gotImBuf[i*stride]-wantIm[i]) > 1e-6 {
			t.Fatalf("i=%d: strided (%v,%v), want (%v,%v)", i, gotReBuf[i*stride], gotImBuf[i*stride], wantRe[i], wantIm[i])
		}
	}
}

// TestZeroSourceBroadcast checks a null/zero-stride source of magnitude
// m: a DC-only input transforms to an all-DC-bin output.
func TestZeroSourceBroadcast(t *testing.T) {
	n := 8
	m := 2.5
	re := make([]float64, n)
	im := make([]float64, n)
	err := ForwardStrided([]float64{m}, nil, 0, 0, re, im, 1, 1, n, 1.0, Options[float64]{})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(re[0]-m*float64(n)) > 1e-9 || math.Abs(im[0]) > 1e-9 {
		t.Fatalf("DC bin = (%v,%v), want (%v,0)", re[0], im[0], m*float64(n))
	}
	for i := 1; i < n; i++ {
		if math.Abs(re[i]) > 1e-8 || math.Abs(im[i]) > 1e-8 {
			t.Errorf("bin %d = (%v,%v), want (0,0)", i, re[i], im[i])
		}
	}
}

// TestScaleLinearity checks that the scale parameter multiplies the
// result uniformly, for both the power-of-two and Bluestein paths.
func TestScaleLinearity(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, n := range []int{8, 13} {
		xr, xi := randomSignal(rng, n)
		unscaledRe := make([]float64, n)
		unscaledIm := make([]float64, n)
		if err := ForwardSplit(xr, xi, unscaledRe, unscaledIm, n, 1.0, Options[float64]{}); err != nil {
			t.Fatal(err)
		}
		const s = 0.25
		scaledRe := make([]float64, n)
		scaledIm := make([]float64, n)
		if err := ForwardSplit(xr, xi, scaledRe, scaledIm, n, s, Options[float64]{}); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < n; i++ {
			if math.Abs(scaledRe[i]-s*unscaledRe[i]) > 1e-6 || math.Abs(scaledIm[i]-s*unscaledIm[i]) > 1e-6 {
				t.Fatalf("n=%d i=%d: scaled (%v,%v), want %v*(%v,%v)", n, i, scaledRe[i], scaledIm[i], s, unscaledRe[i], unscaledIm[i])
			}
		}
	}
}

// TestInterleaveEquivalence checks that the interleaved entry point
// matches the split entry point on the same data.
func TestInterleaveEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	n := 32
	xr, xi := randomSignal(rng, n)
	wantRe := make([]float64, n)
	wantIm := make([]float64, n)
	if err := ForwardSplit(xr, xi, wantRe, wantIm, n, 1.0, Options[float64]{}); err != nil {
		t.Fatal(err)
	}

	src := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		src[2*i] = xr[i]
		src[2*i+1] = xi[i]
	}
	dst := make([]float64, 2*n)
	if err := ForwardInterleaved(src, dst, n, 1.0, Options[float64]{}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if math.Abs(dst[2*i]-wantRe[i]) > 1e-6 || math.Abs(dst[2*i+1]-wantIm[i]) > 1e-6 {
			t.Fatalf("i=%d: interleaved (%v,%v), want (%v,%v)", i, dst[2*i], dst[2*i+1], wantRe[i], wantIm[i])
		}
	}
}

// TestBitReversalPermutation checks that the power-of-two path produces
// a transform consistent with evaluating the DFT sum directly — the
// visible effect of a correct bit-reversal permutation feeding the
// butterfly schedule.
func TestBitReversalPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for _, n := range []int{4, 16, 64} {
		xr, xi := randomSignal(rng, n)
		wantRe, wantIm := bruteForceDFT(xr, xi, true)
		gotRe := make([]float64, n)
		gotIm := make([]float64, n)
		if err := ForwardSplit(xr, xi, gotRe, gotIm, n, 1.0, Options[float64]{}); err != nil {
			t.Fatal(err)
		}
		for i := 0; i < n; i++ {
			if math.Abs(gotRe[i]-wantRe[i]) > 1e-6 || math.Abs(gotIm[i]-wantIm[i]) > 1e-6 {
				t.Fatalf("n=%d i=%d: got (%v,%v), want (%v,%v)", n, i, gotRe[i], gotIm[i], wantRe[i], wantIm[i])
			}
		}
	}
}

// TestSIMDConsistency checks that disabling SIMD dispatch entirely
// produces the same numerical result as the default path.
func TestSIMDConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 256
	xr, xi := randomSignal(rng, n)
	defaultRe := make([]float64, n)
	defaultIm := make([]float64, n)
	if err := ForwardSplit(xr, xi, defaultRe, defaultIm, n, 1.0, Options[float64]{}); err != nil {
		t.Fatal(err)
	}
	scalarRe := make([]float64, n)
	scalarIm := make([]float64, n)
	if err := ForwardSplit(xr, xi, scalarRe, scalarIm, n, 1.0, Options[float64]{DisableSIMD: true}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if math.Abs(defaultRe[i]-scalarRe[i]) > 1e-9 || math.Abs(defaultIm[i]-scalarIm[i]) > 1e-9 {
			t.Fatalf("i=%d: default (%v,%v) vs scalar-only (%v,%v)", i, defaultRe[i], defaultIm[i], scalarRe[i], scalarIm[i])
		}
	}
}

func TestForwardInverseDisableBluesteinOnNonPowerOfTwo(t *testing.T) {
	n := 9
	re := make([]float64, n)
	im := make([]float64, n)
	err := ForwardSplit(make([]float64, n), make([]float64, n), re, im, n, 1.0, Options[float64]{DisableBluestein: true})
	if err != ErrInvalidArgument {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestZeroLengthIsNoop(t *testing.T) {
	if err := ForwardSplit(nil, nil, nil, nil, 0, 1.0, Options[float64]{}); err != nil {
		t.Fatalf("n=0 should be a no-op, got %v", err)
	}
}

// TestInterleaveInPlaceAliasing checks that an interleaved transform run
// with the same array as both source and destination is accepted and
// matches the out-of-place result, even though the real and imaginary
// streams (offset by one element, stride 2) share a backing array.
func TestInterleaveInPlaceAliasing(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	n := 32
	xr, xi := randomSignal(rng, n)
	wantRe := make([]float64, n)
	wantIm := make([]float64, n)
	if err := ForwardSplit(xr, xi, wantRe, wantIm, n, 1.0, Options[float64]{}); err != nil {
		t.Fatal(err)
	}

	buf := make([]float64, 2*n)
	for i := 0; i < n; i++ {
		buf[2*i] = xr[i]
		buf[2*i+1] = xi[i]
	}
	if err := ForwardInterleaved(buf, buf, n, 1.0, Options[float64]{}); err != nil {
		t.Fatalf("in-place interleaved: %v", err)
	}
	for i := 0; i < n; i++ {
		if math.Abs(buf[2*i]-wantRe[i]) > 1e-6 || math.Abs(buf[2*i+1]-wantIm[i]) > 1e-6 {
			t.Fatalf("i=%d: in-place interleaved (%v,%v), want (%v,%v)", i, buf[2*i], buf[2*i+1], wantRe[i], wantIm[i])
		}
	}
}

func TestAliasedSourceEqualsDestination(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	n := 16
	xr, xi := randomSignal(rng, n)
	wantRe := make([]float64, n)
	wantIm := make([]float64, n)
	if err := ForwardSplit(xr, xi, wantRe, wantIm, n, 1.0, Options[float64]{}); err != nil {
		t.Fatal(err)
	}

	re := append([]float64{}, xr...)
	im := append([]float64{}, xi...)
	if err := ForwardSplit(re, im, re, im, n, 1.0, Options[float64]{}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		if math.Abs(re[i]-wantRe[i]) > 1e-6 || math.Abs(im[i]-wantIm[i]) > 1e-6 {
			t.Fatalf("i=%d: in-place (%v,%v), want (%v,%v)", i, re[i], im[i], wantRe[i], wantIm[i])
		}
	}
}
