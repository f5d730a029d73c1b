//go:build !((amd64 || arm64) && goexperiment.simd)

package simd

// vectorPassF64/F32 are the fallback used when the experimental
// simd/archsimd package is not available (GOEXPERIMENT=simd not set, or
// an architecture xfft has no vector backend for). Returning 0 tells
// the caller nothing was consumed, so xfft/butterfly's plain scalar
// ascending pass loop runs unmodified.
func vectorPassF64(mask FeatureMask, disableAVX, disableAVX512 bool, re, im []float64, fromDepth, toDepth int, negateImag bool) int {
	return 0
}

func vectorPassF32(mask FeatureMask, disableAVX, disableAVX512 bool, re, im []float32, fromDepth, toDepth int, negateImag bool) int {
	return 0
}
