package xfft

import (
	"github.com/dspcore/xfft/xfft/bitrev"
	"github.com/dspcore/xfft/xfft/bluestein"
	"github.com/dspcore/xfft/xfft/butterfly"
	"github.com/dspcore/xfft/xfft/scalar"
	"github.com/dspcore/xfft/xfft/simd"
)

// Options carries every pluggable hook and build-time toggle as
// runtime-settable struct fields instead of compile-time macros or Go
// build tags, since the transform's state machine requires these to be
// selectable per call (a build tag could not implement "disable AVX-512
// at runtime"). This favors small, explicit config structs over global
// state: one options struct carrying plain function-pointer fields.
type Options[T any] struct {
	// Allocator/Deallocator override the Bluestein scratch pool (default:
	// the process-wide sync.Pool in xfft/bluestein). The hooks are typed
	// over T directly rather than []byte: reinterpreting a []byte as a
	// []T would require unsafe pointer casts with alignment assumptions
	// that do not hold generically over an arbitrary Scalar[T] (see
	// DESIGN.md).
	Allocator   func(n int) []T
	Deallocator func([]T)

	// CPUProbe overrides simd.Detect's runtime feature probe.
	CPUProbe func() simd.FeatureMask

	// Arith overrides the default scalar implementation. Required for any
	// T other than float32/float64: custom twiddle primitives per scalar
	// type are supplied by implementing this interface rather than a set
	// of macro hooks.
	Arith scalar.Arith[T]

	// Hook is an optional optimized multipass: it is consulted before
	// simd.Hook, so a caller-supplied fused kernel always takes priority
	// over xfft's own vector backends.
	Hook butterfly.OptimizedMultipass[T]

	DisableSIMD            bool
	DisableAVX             bool
	DisableAVX512          bool
	DisableBluestein       bool
	DisableBitReverseTable bool

	// LBUF is the twiddle buffer log size (range 2..n); 0 selects the
	// butterfly package's own default (9).
	LBUF int
	// TileBits is Q, the bit-reversal tile exponent; 0 selects
	// min(LBUF/2, 6) as the documented default.
	TileBits int

	// CacheFeatureMask is not consulted by any transform: when CPUProbe
	// is nil the feature mask comes from simd.Detect, which probes the
	// hardware once per process and returns the cached mask on every
	// later call whatever this field says. Setting it to false does not
	// make the mask be recomputed per call.
	CacheFeatureMask bool

	// DisabledScalarTypes lists scalar type names to reject transforms
	// for. Go instantiates ForwardSplit etc. per call via generics rather
	// than conditionally compiling per-type entry points, so this field
	// is validated (rejecting a transform whose T's name appears in the
	// list) rather than changing what compiles — see DESIGN.md.
	DisabledScalarTypes []string
}

func (o Options[T]) lbuf() int {
	if o.LBUF >= 2 {
		return o.LBUF
	}
	return butterfly.DefaultOptions().LBUF
}

func (o Options[T]) tileBits() int {
	if o.TileBits >= 1 {
		return o.TileBits
	}
	l := o.lbuf() / 2
	if l > 6 {
		l = 6
	}
	if l < 1 {
		l = 1
	}
	return l
}

func (o Options[T]) butterflyOptions() butterfly.Options {
	opts := butterfly.DefaultOptions()
	opts.LBUF = o.lbuf()
	return opts
}

func (o Options[T]) bitrevOptions() bitrev.Options {
	return bitrev.Options{UseTable: !o.DisableBitReverseTable, TileBits: o.tileBits()}
}

func (o Options[T]) bluesteinOptions() bluestein.Options[T] {
	return bluestein.Options[T]{
		Butterfly: o.butterflyOptions(),
		Bitrev:    o.bitrevOptions(),
		Hook:      o.resolveHook(),
		Alloc:     o.Allocator,
		Free:      o.Deallocator,
	}
}

func (o Options[T]) featureMask() simd.FeatureMask {
	probe := o.CPUProbe
	if probe == nil {
		probe = simd.Detect
	}
	mask := probe()
	if o.DisableAVX {
		mask &^= simd.FeatureAVX | simd.FeatureAVX2
	}
	if o.DisableAVX512 {
		mask &^= simd.FeatureAVX512
	}
	return mask
}

// resolveHook composes the caller-supplied hook (tried first) with
// xfft's own SIMD backend (tried second), falling through to the plain
// scalar butterfly path when neither consumes a pass.
func (o Options[T]) resolveHook() butterfly.OptimizedMultipass[T] {
	if o.DisableSIMD && o.Hook == nil {
		return nil
	}
	userHook := o.Hook
	var simdHook butterfly.OptimizedMultipass[T]
	if !o.DisableSIMD {
		// simd.Hook only accepts float32/float64; any other T keeps a nil
		// simdHook and runs the scalar path.
		switch any(*new(T)).(type) {
		case float64:
			simdHook = any(simd.Hook[float64](o.featureMask(), o.DisableAVX, o.DisableAVX512)).(butterfly.OptimizedMultipass[T])
		case float32:
			simdHook = any(simd.Hook[float32](o.featureMask(), o.DisableAVX, o.DisableAVX512)).(butterfly.OptimizedMultipass[T])
		}
	}
	if userHook == nil {
		return simdHook
	}
	if simdHook == nil {
		return userHook
	}
	return func(re, im []T, fromDepth, toDepth int, negateImag bool) int {
		if c := userHook(re, im, fromDepth, toDepth, negateImag); c > 0 {
			return c
		}
		return simdHook(re, im, fromDepth, toDepth, negateImag)
	}
}

func (o Options[T]) arith() scalar.Arith[T] {
	if o.Arith != nil {
		return o.Arith
	}
	return defaultArith[T]()
}

func defaultArith[T any]() scalar.Arith[T] {
	switch any(*new(T)).(type) {
	case float64:
		return any(scalar.Float64Arith{}).(scalar.Arith[T])
	case float32:
		return any(scalar.Float32Arith{}).(scalar.Arith[T])
	default:
		panic("xfft: no default Arith for this scalar type; set Options.Arith")
	}
}

func (o Options[T]) scalarTypeDisabled() bool {
	if len(o.DisabledScalarTypes) == 0 {
		return false
	}
	name := typeName[T]()
	for _, d := range o.DisabledScalarTypes {
		if d == name {
			return true
		}
	}
	return false
}

func typeName[T any]() string {
	switch any(*new(T)).(type) {
	case float64:
		return "float64"
	case float32:
		return "float32"
	default:
		return "custom"
	}
}
