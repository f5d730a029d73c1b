// Package xfft implements the top-level transform: it validates
// arguments, dispatches power-of-two vs. Bluestein, and applies final
// scaling, composing xfft/bitrev, xfft/butterfly, xfft/bluestein and
// xfft/simd as a single call-site choke point — one stateless
// per-call dispatcher rather than a cached plan object.
package xfft

import (
	"unsafe"

	"github.com/dspcore/xfft/xfft/bitrev"
	"github.com/dspcore/xfft/xfft/bluestein"
	"github.com/dspcore/xfft/xfft/butterfly"
	"github.com/dspcore/xfft/xfft/scalar"
)

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func log2(n int) int {
	l := 0
	for 1<<uint(l) < n {
		l++
	}
	return l
}

func overlaps[T any](a, b []T) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	var zero T
	size := unsafe.Sizeof(zero)
	ap := uintptr(unsafe.Pointer(&a[0]))
	bp := uintptr(unsafe.Pointer(&b[0]))
	aEnd := ap + uintptr(len(a))*size
	bEnd := bp + uintptr(len(b))*size
	return ap < bEnd && bp < aEnd
}

// aliasesElement reports whether two strided views might reference the
// same element, refining a raw byte-range overlap by stride parity: two
// views sharing a stride s whose starting elements differ by a
// non-multiple of s never select the same index even though their byte
// ranges overlap — the case of the even and odd halves of one
// interleaved buffer. When the strides differ (or either is a
// broadcast, stride 0), parity proves nothing and a byte overlap is
// treated as a possible element alias, as before.
func aliasesElement[T any](a []T, aStride int, b []T, bStride int) bool {
	if !overlaps(a, b) {
		return false
	}
	if aStride == 0 || bStride == 0 || aStride != bStride {
		return true
	}
	var zero T
	size := int64(unsafe.Sizeof(zero))
	ap := int64(uintptr(unsafe.Pointer(&a[0])))
	bp := int64(uintptr(unsafe.Pointer(&b[0])))
	deltaElems := (bp - ap) / size
	s := int64(aStride)
	return ((deltaElems % s) + s) % s == 0
}

// request bundles one call's four array views plus direction and scale;
// it is constructed, consumed, and discarded within a single call.
type request[T any] struct {
	reSrc, imSrc             []T
	reSrcStride, imSrcStride int
	reDst, imDst             []T
	reDstStride, imDstStride int
	n                        int
	negateImag               bool
	scale                    T
}

func (r request[T]) validate(opts Options[T]) error {
	if r.n < 0 {
		return ErrInvalidArgument
	}
	if opts.scalarTypeDisabled() {
		return ErrInvalidArgument
	}
	if r.n == 0 {
		return nil
	}
	if r.reDstStride == 0 || r.imDstStride == 0 {
		return ErrInvalidArgument
	}
	if aliasesElement(r.reSrc, r.reSrcStride, r.imDst, r.imDstStride) ||
		aliasesElement(r.imSrc, r.imSrcStride, r.reDst, r.reDstStride) {
		return ErrInvalidArgument
	}
	if overlaps(r.reSrc, r.reDst) && r.reSrcStride != r.reDstStride {
		return ErrInvalidArgument
	}
	if overlaps(r.imSrc, r.imDst) && r.imSrcStride != r.imDstStride {
		return ErrInvalidArgument
	}
	if !isPowerOfTwo(r.n) && opts.DisableBluestein {
		return ErrInvalidArgument
	}
	return nil
}

func gather[T any](dst, src []T, stride, n int) {
	if stride == 0 {
		var v T
		if len(src) > 0 {
			v = src[0]
		}
		for i := 0; i < n; i++ {
			dst[i] = v
		}
		return
	}
	for i := 0; i < n; i++ {
		dst[i] = src[i*stride]
	}
}

func scatter[T any](dst []T, stride int, src []T, n int) {
	for i := 0; i < n; i++ {
		dst[i*stride] = src[i]
	}
}

func scaleBy[T any](a scalar.Arith[T], data []T, n int, s T) {
	if a.IsOne(s) {
		return
	}
	for i := 0; i < n; i++ {
		data[i] = a.Mul(data[i], s)
	}
}

// run is the VALIDATE -> DISPATCH -> pipeline -> RETURN state machine.
func run[T any](opts Options[T], r request[T]) error {
	if err := r.validate(opts); err != nil {
		return err
	}
	if r.n == 0 {
		return nil
	}
	a := opts.arith()

	if r.reDstStride == 1 && r.imDstStride == 1 && len(r.reDst) >= r.n && len(r.imDst) >= r.n {
		reWork := r.reDst[:r.n]
		imWork := r.imDst[:r.n]
		if isPowerOfTwo(r.n) {
			potPipeline(a, opts, reWork, imWork, r.reSrc, r.imSrc, r.reSrcStride, r.imSrcStride, r.negateImag)
		} else {
			gather(reWork, r.reSrc, r.reSrcStride, r.n)
			gather(imWork, r.imSrc, r.imSrcStride, r.n)
			bluestein.Transform(a, reWork, imWork, r.negateImag, opts.bluesteinOptions())
		}
		scaleBy(a, reWork, r.n, r.scale)
		scaleBy(a, imWork, r.n, r.scale)
		return nil
	}

	alloc := opts.Allocator
	if alloc == nil {
		alloc = func(n int) []T { return make([]T, n) }
	}
	dealloc := opts.Deallocator
	reWork := alloc(r.n)
	imWork := alloc(r.n)
	if len(reWork) < r.n || len(imWork) < r.n {
		if dealloc != nil {
			dealloc(reWork)
			dealloc(imWork)
		}
		return ErrOutOfMemory
	}
	reWork, imWork = reWork[:r.n], imWork[:r.n]
	if dealloc != nil {
		defer dealloc(reWork)
		defer dealloc(imWork)
	}

	if isPowerOfTwo(r.n) {
		potPipeline(a, opts, reWork, imWork, r.reSrc, r.imSrc, r.reSrcStride, r.imSrcStride, r.negateImag)
	} else {
		gather(reWork, r.reSrc, r.reSrcStride, r.n)
		gather(imWork, r.imSrc, r.imSrcStride, r.n)
		bluestein.Transform(a, reWork, imWork, r.negateImag, opts.bluesteinOptions())
	}
	scaleBy(a, reWork, r.n, r.scale)
	scaleBy(a, imWork, r.n, r.scale)
	scatter(r.reDst, r.reDstStride, reWork, r.n)
	scatter(r.imDst, r.imDstStride, imWork, r.n)
	return nil
}

// potPipeline runs the power-of-two pipeline directly into unit-stride
// work buffers: gather from the (possibly strided or aliased) source,
// bit-reverse permute in place, then the butterfly schedule.
func potPipeline[T any](a scalar.Arith[T], opts Options[T], reWork, imWork, reSrc, imSrc []T, reSrcStride, imSrcStride int, negateImag bool) {
	n := len(reWork)
	log2n := log2(n)
	// Gather then permute in place, rather than a combined
	// gather-and-permute pass, so that a source aliasing the
	// destination (permitted when strides match) is never read and
	// written out of order: the gather is a same-position copy when
	// aliased (a no-op), and PermuteInPlace's swap-based reordering is
	// safe on a buffer the caller does not also hold a second,
	// differently strided view into.
	gather(reWork, reSrc, reSrcStride, n)
	gather(imWork, imSrc, imSrcStride, n)
	bitrevOpts := opts.bitrevOptions()
	bitrev.PermuteInPlace(reWork, 1, log2n, bitrevOpts)
	bitrev.PermuteInPlace(imWork, 1, log2n, bitrevOpts)
	butterfly.Run(a, reWork, imWork, log2n, negateImag, opts.butterflyOptions(), opts.resolveHook())
}
