//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func detectHardware() FeatureMask {
	var m FeatureMask
	if cpu.ARM64.HasASIMD {
		m |= FeatureNEON
	}
	return m
}
