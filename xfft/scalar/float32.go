package scalar

// Float32Arith implements Arith[float32]. It reuses Float64Arith's table
// and Taylor tail internally (computed in double precision, rounded down
// to float32 on return) — working precision one notch above storage
// precision.
type Float32Arith struct{}

func (Float32Arith) Zero() float32         { return 0 }
func (Float32Arith) One() float32          { return 1 }
func (Float32Arith) Add(a, b float32) float32 { return a + b }
func (Float32Arith) Sub(a, b float32) float32 { return a - b }
func (Float32Arith) Mul(a, b float32) float32 { return a * b }
func (Float32Arith) Neg(a float32) float32    { return -a }
func (Float32Arith) IsOne(a float32) bool     { return a == 1 }
func (Float32Arith) InvPow2(n int) float32    { return float32((Float64Arith{}).InvPow2(n)) }

func (Float32Arith) Cexpm1(k int) (re, im float32) {
	r, i := (Float64Arith{}).Cexpm1(k)
	return float32(r), float32(i)
}

func (Float32Arith) CexpmFrac(p, q int) (re, im float32) {
	r, i := (Float64Arith{}).CexpmFrac(p, q)
	return float32(r), float32(i)
}
