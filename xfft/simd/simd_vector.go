//go:build (amd64 || arm64) && goexperiment.simd

package simd

import (
	"simd/archsimd"

	"github.com/dspcore/xfft/xfft/scalar"
	"github.com/dspcore/xfft/xfft/twiddle"
)

// vectorPassF64 runs the full ascending butterfly schedule from
// fromDepth..toDepth over float64 data using archsimd.Float64x2 lanes,
// two adjacent twiddle indices k, k+1 at a time, falling back to a
// scalar tail for the odd remainder. Grounded on
// other_examples/fft-radix2_simd.go.go's processBlocksSIMD, adapted from
// that file's packed-complex128 layout to xfft's separate re/im arrays:
// each lane there held one interleaved complex value, here each lane
// holds one k's real (or imaginary) component, so the complex multiply
// is four independent per-lane Mul/Add/Sub instead of one AddSub-based
// packed multiply.
func vectorPassF64(mask FeatureMask, disableAVX, disableAVX512 bool, re, im []float64, fromDepth, toDepth int, negateImag bool) int {
	if !mask.Has(FeatureAVX2) && !mask.Has(FeatureNEON) {
		return 0
	}
	if disableAVX && !mask.Has(FeatureNEON) {
		return 0
	}
	a := scalar.Float64Arith{}
	for d := fromDepth; d <= toDepth; d++ {
		blockSize := 1 << uint(d)
		h := blockSize / 2
		numBlocks := len(re) / blockSize
		wr, wi := twiddle.Expand(a, d, d-1, negateImag)

		for blk := 0; blk < numBlocks; blk++ {
			base := blk * blockSize
			hiBase := base + h
			k := 0
			for ; k+1 < h; k += 2 {
				lo, hi := base+k, hiBase+k
				reLo := archsimd.LoadFloat64x2((*[2]float64)(re[lo : lo+2]))
				imLo := archsimd.LoadFloat64x2((*[2]float64)(im[lo : lo+2]))
				reHi := archsimd.LoadFloat64x2((*[2]float64)(re[hi : hi+2]))
				imHi := archsimd.LoadFloat64x2((*[2]float64)(im[hi : hi+2]))
				wrv := archsimd.LoadFloat64x2((*[2]float64)(wr[k : k+2]))
				wiv := archsimd.LoadFloat64x2((*[2]float64)(wi[k : k+2]))

				xr := wrv.Mul(reHi).Sub(wiv.Mul(imHi))
				xi := wrv.Mul(imHi).Add(wiv.Mul(reHi))

				newLoRe := reLo.Add(xr)
				newLoIm := imLo.Add(xi)
				newHiRe := reLo.Sub(xr)
				newHiIm := imLo.Sub(xi)

				newLoRe.Store((*[2]float64)(re[lo : lo+2]))
				newLoIm.Store((*[2]float64)(im[lo : lo+2]))
				newHiRe.Store((*[2]float64)(re[hi : hi+2]))
				newHiIm.Store((*[2]float64)(im[hi : hi+2]))
			}
			for ; k < h; k++ {
				lo, hi := base+k, hiBase+k
				xr := wr[k]*re[hi] - wi[k]*im[hi]
				xi := wr[k]*im[hi] + wi[k]*re[hi]
				re[hi] = re[lo] - xr
				im[hi] = im[lo] - xi
				re[lo] = re[lo] + xr
				im[lo] = im[lo] + xi
			}
		}
	}
	return toDepth - fromDepth + 1
}

func vectorPassF32(mask FeatureMask, disableAVX, disableAVX512 bool, re, im []float32, fromDepth, toDepth int, negateImag bool) int {
	if !mask.Has(FeatureAVX2) && !mask.Has(FeatureNEON) {
		return 0
	}
	if disableAVX && !mask.Has(FeatureNEON) {
		return 0
	}
	a := scalar.Float32Arith{}
	for d := fromDepth; d <= toDepth; d++ {
		blockSize := 1 << uint(d)
		h := blockSize / 2
		numBlocks := len(re) / blockSize
		wr, wi := twiddle.Expand(a, d, d-1, negateImag)

		for blk := 0; blk < numBlocks; blk++ {
			base := blk * blockSize
			hiBase := base + h
			k := 0
			for ; k+3 < h; k += 4 {
				lo, hi := base+k, hiBase+k
				reLo := archsimd.LoadFloat32x4((*[4]float32)(re[lo : lo+4]))
				imLo := archsimd.LoadFloat32x4((*[4]float32)(im[lo : lo+4]))
				reHi := archsimd.LoadFloat32x4((*[4]float32)(re[hi : hi+4]))
				imHi := archsimd.LoadFloat32x4((*[4]float32)(im[hi : hi+4]))
				wrv := archsimd.LoadFloat32x4((*[4]float32)(wr[k : k+4]))
				wiv := archsimd.LoadFloat32x4((*[4]float32)(wi[k : k+4]))

				xr := wrv.Mul(reHi).Sub(wiv.Mul(imHi))
				xi := wrv.Mul(imHi).Add(wiv.Mul(reHi))

				newLoRe := reLo.Add(xr)
				newLoIm := imLo.Add(xi)
				newHiRe := reLo.Sub(xr)
				newHiIm := imLo.Sub(xi)

				newLoRe.Store((*[4]float32)(re[lo : lo+4]))
				newLoIm.Store((*[4]float32)(im[lo : lo+4]))
				newHiRe.Store((*[4]float32)(re[hi : hi+4]))
				newHiIm.Store((*[4]float32)(im[hi : hi+4]))
			}
			for ; k < h; k++ {
				lo, hi := base+k, hiBase+k
				xr := wr[k]*re[hi] - wi[k]*im[hi]
				xi := wr[k]*im[hi] + wi[k]*re[hi]
				re[hi] = re[lo] - xr
				im[hi] = im[lo] - xi
				re[lo] = re[lo] + xr
				im[lo] = im[lo] + xi
			}
		}
	}
	return toDepth - fromDepth + 1
}
