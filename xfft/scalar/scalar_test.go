package scalar

import (
	"math"
	"testing"
)

func TestFloat64Cexpm1TableMatchesDirect(t *testing.T) {
	a := Float64Arith{}
	for k := 0; k < MaxTableK; k++ {
		theta := 2 * math.Pi / float64(int64(1)<<uint(k))
		wantRe := math.Cos(theta) - 1
		wantIm := math.Sin(theta)
		gotRe, gotIm := a.Cexpm1(k)
		if math.Abs(gotRe-wantRe) > 1e-12 || math.Abs(gotIm-wantIm) > 1e-12 {
			t.Errorf("Cexpm1(%d) = (%v, %v), want (%v, %v)", k, gotRe, gotIm, wantRe, wantIm)
		}
	}
}

func TestFloat64Cexpm1ZeroIsZero(t *testing.T) {
	a := Float64Arith{}
	re, im := a.Cexpm1(0)
	if re != 0 || im != 0 {
		t.Errorf("Cexpm1(0) = (%v, %v), want (0, 0)", re, im)
	}
}

func TestFloat64Cexpm1TaylorTailMatchesDirect(t *testing.T) {
	a := Float64Arith{}
	for _, k := range []int{17, 18, 20, 24, 30} {
		theta := 2 * math.Pi / float64(int64(1)<<uint(k))
		wantRe := math.Cos(theta) - 1
		wantIm := math.Sin(theta)
		gotRe, gotIm := a.Cexpm1(k)
		if math.Abs(gotRe-wantRe) > 1e-15 || math.Abs(gotIm-wantIm) > 1e-15 {
			t.Errorf("Cexpm1(%d) = (%v, %v), want (%v, %v)", k, gotRe, gotIm, wantRe, wantIm)
		}
	}
}

func TestFloat64CexpmFracMatchesDirect(t *testing.T) {
	a := Float64Arith{}
	cases := []struct{ p, q int }{
		{0, 8}, {1, 8}, {3, 8}, {7, 8}, {1, 1024}, {1023, 1024}, {5, 7},
	}
	for _, c := range cases {
		theta := 2 * math.Pi * float64(c.p) / float64(c.q)
		wantRe := math.Cos(theta) - 1
		wantIm := math.Sin(theta)
		gotRe, gotIm := a.CexpmFrac(c.p, c.q)
		if math.Abs(gotRe-wantRe) > 1e-9 || math.Abs(gotIm-wantIm) > 1e-9 {
			t.Errorf("CexpmFrac(%d,%d) = (%v, %v), want (%v, %v)", c.p, c.q, gotRe, gotIm, wantRe, wantIm)
		}
	}
}

func TestFloat32CexpmMatchesFloat64(t *testing.T) {
	a32 := Float32Arith{}
	a64 := Float64Arith{}
	for k := 0; k < MaxTableK; k++ {
		r32, i32 := a32.Cexpm1(k)
		r64, i64 := a64.Cexpm1(k)
		if math.Abs(float64(r32)-r64) > 1e-6 || math.Abs(float64(i32)-i64) > 1e-6 {
			t.Errorf("Float32 Cexpm1(%d) diverges from float64: (%v,%v) vs (%v,%v)", k, r32, i32, r64, i64)
		}
	}
}

func TestInvPow2(t *testing.T) {
	a64 := Float64Arith{}
	a32 := Float32Arith{}
	for n := 0; n <= 20; n++ {
		want := 1.0 / float64(int64(1)<<uint(n))
		if got := a64.InvPow2(n); got != want {
			t.Errorf("Float64Arith.InvPow2(%d) = %v, want %v", n, got, want)
		}
		if got := a32.InvPow2(n); math.Abs(float64(got)-want) > 1e-7*want {
			t.Errorf("Float32Arith.InvPow2(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestIsOne(t *testing.T) {
	a := Float64Arith{}
	if !a.IsOne(1.0) {
		t.Error("IsOne(1.0) should be true")
	}
	if a.IsOne(1.0001) {
		t.Error("IsOne(1.0001) should be false")
	}
}
