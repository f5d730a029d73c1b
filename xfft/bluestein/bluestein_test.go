package bluestein

import (
	"math"
	"math/rand"
	"testing"

	"github.com/dspcore/xfft/xfft/scalar"
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

func TestTransformMatchesBruteForceDFT(t *testing.T) {
	a := scalar.Float64Arith{}
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{2, 3, 5, 6, 7, 9, 11, 13, 100} {
		xr := make([]float64, n)
		xi := make([]float64, n)
		for i := range xr {
			xr[i] = rng.Float64()*2 - 1
			xi[i] = rng.Float64()*2 - 1
		}
		wantRe, wantIm := bruteForceDFT(xr, xi, true)

		gotRe := append([]float64{}, xr...)
		gotIm := append([]float64{}, xi...)
		Transform(a, gotRe, gotIm, true, Options[float64]{})

		for i := 0; i < n; i++ {
			if math.Abs(gotRe[i]-wantRe[i]) > 1e-6 || math.Abs(gotIm[i]-wantIm[i]) > 1e-6 {
				t.Fatalf("n=%d i=%d: got (%v,%v), want (%v,%v)", n, i, gotRe[i], gotIm[i], wantRe[i], wantIm[i])
			}
		}
	}
}

func TestTransformRoundTrip(t *testing.T) {
	a := scalar.Float64Arith{}
	rng := rand.New(rand.NewSource(99))
	for _, n := range []int{3, 7, 13, 101} {
		xr := make([]float64, n)
		xi := make([]float64, n)
		for i := range xr {
			xr[i] = rng.Float64()*2 - 1
			xi[i] = rng.Float64()*2 - 1
		}
		fr := append([]float64{}, xr...)
		fi := append([]float64{}, xi...)
		Transform(a, fr, fi, true, Options[float64]{})
		Transform(a, fr, fi, false, Options[float64]{})

		for i := 0; i < n; i++ {
			gotRe := fr[i] / float64(n)
			gotIm := fi[i] / float64(n)
			if math.Abs(gotRe-xr[i]) > 1e-6 || math.Abs(gotIm-xi[i]) > 1e-6 {
				t.Fatalf("n=%d i=%d: round trip (%v,%v), want (%v,%v)", n, i, gotRe, gotIm, xr[i], xi[i])
			}
		}
	}
}

func TestTransformDCImpulse(t *testing.T) {
	a := scalar.Float64Arith{}
	n := 5
	xr := []float64{1, 1, 1, 1, 1}
	xi := make([]float64, n)
	Transform(a, xr, xi, true, Options[float64]{})
	if math.Abs(xr[0]-5) > 1e-9 || math.Abs(xi[0]) > 1e-9 {
		t.Fatalf("DC bin = (%v,%v), want (5,0)", xr[0], xi[0])
	}
	for i := 1; i < n; i++ {
		if math.Abs(xr[i]) > 1e-8 || math.Abs(xi[i]) > 1e-8 {
			t.Errorf("bin %d = (%v,%v), want (0,0)", i, xr[i], xi[i])
		}
	}
}

func TestTransformSingleSample(t *testing.T) {
	a := scalar.Float64Arith{}
	xr := []float64{3.5}
	xi := []float64{-1.25}
	Transform(a, xr, xi, true, Options[float64]{})
	if xr[0] != 3.5 || xi[0] != -1.25 {
		t.Fatalf("n=1 transform must be identity, got (%v,%v)", xr[0], xi[0])
	}
}
