//go:build !amd64 && !arm64

package simd

// detectHardware reports no vector support on architectures xfft does
// not ship a backend for.
func detectHardware() FeatureMask { return 0 }
