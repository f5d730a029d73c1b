//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func detectHardware() FeatureMask {
	var m FeatureMask
	if cpu.X86.HasAVX {
		m |= FeatureAVX
	}
	if cpu.X86.HasAVX2 {
		m |= FeatureAVX2
	}
	if cpu.X86.HasAVX512F {
		m |= FeatureAVX512
	}
	return m
}
