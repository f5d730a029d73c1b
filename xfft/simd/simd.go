// Package simd implements runtime SIMD dispatch: a feature mask detected
// once per process selects a vectorized butterfly pass where available,
// falling back to the plain scalar path in xfft/butterfly otherwise.
package simd

import (
	"sync/atomic"

	"github.com/dspcore/xfft/xfft/butterfly"
)

// FeatureMask is a bitset of detected vector ISA support.
type FeatureMask uint32

const (
	FeatureAVX FeatureMask = 1 << iota
	FeatureAVX2
	FeatureAVX512
	FeatureNEON
)

func (m FeatureMask) Has(f FeatureMask) bool { return m&f != 0 }

var cachedMask atomic.Uint32
var cachedOnce atomic.Bool

// Detect returns the process's vector feature mask, probing the hardware
// once and caching the result. The probe is deferred to first use rather
// than run eagerly in init(), so SetCached can replace the mask before
// any transform runs.
func Detect() FeatureMask {
	if cachedOnce.Load() {
		return FeatureMask(cachedMask.Load())
	}
	m := detectHardware()
	cachedMask.Store(uint32(m))
	cachedOnce.Store(true)
	return m
}

// SetCached overrides the cached feature mask: later Detect calls return
// m without probing the hardware. The xfft package does not call it.
func SetCached(m FeatureMask) {
	cachedMask.Store(uint32(m))
	cachedOnce.Store(true)
}

// floatType constrains the scalar element types xfft ships vector
// backends for. Custom Scalar[T] implementations (fixed-point, quad
// precision) never match this constraint and always run the scalar
// xfft/butterfly path instead.
type floatType interface{ ~float32 | ~float64 }

// Hook builds a butterfly.OptimizedMultipass that vectorizes the entire
// ascending pass schedule from fromDepth..toDepth when the element type
// and detected feature mask support it, falling back (returning 0, so
// the caller's scalar loop runs unmodified) otherwise.
func Hook[T floatType](mask FeatureMask, disableAVX, disableAVX512 bool) butterfly.OptimizedMultipass[T] {
	return func(re, im []T, fromDepth, toDepth int, negateImag bool) int {
		switch r := any(re).(type) {
		case []float64:
			i := any(im).([]float64)
			return vectorPassF64(mask, disableAVX, disableAVX512, r, i, fromDepth, toDepth, negateImag)
		case []float32:
			i := any(im).([]float32)
			return vectorPassF32(mask, disableAVX, disableAVX512, r, i, fromDepth, toDepth, negateImag)
		default:
			return 0
		}
	}
}
