package xfft

// This file exposes the three callable shapes — split, interleaved,
// strided — each in forward and inverse variants, for any instantiated
// scalar type, as one generic implementation per shape.

// ForwardSplit computes the forward (negative-exponent) DFT of
// (reSrc, imSrc) into (reDst, imDst), n elements, unit strides. A nil
// reSrc or imSrc is a zero broadcast.
func ForwardSplit[T any](reSrc, imSrc, reDst, imDst []T, n int, scale T, opts Options[T]) error {
	return splitTransform(true, reSrc, imSrc, reDst, imDst, n, scale, opts)
}

// InverseSplit computes the inverse (positive-exponent) DFT.
func InverseSplit[T any](reSrc, imSrc, reDst, imDst []T, n int, scale T, opts Options[T]) error {
	return splitTransform(false, reSrc, imSrc, reDst, imDst, n, scale, opts)
}

func splitTransform[T any](negateImag bool, reSrc, imSrc, reDst, imDst []T, n int, scale T, opts Options[T]) error {
	reStride, imStride := 1, 1
	if reSrc == nil {
		reStride = 0
	}
	if imSrc == nil {
		imStride = 0
	}
	return run(opts, request[T]{
		reSrc: reSrc, imSrc: imSrc, reSrcStride: reStride, imSrcStride: imStride,
		reDst: reDst, imDst: imDst, reDstStride: 1, imDstStride: 1,
		n: n, negateImag: negateImag, scale: scale,
	})
}

// ForwardInterleaved computes the forward DFT over an interleaved
// (real, imag, real, imag, ...) layout: src/dst have length >= 2n, with
// im = re+1 (stride 2). A nil src is a zero broadcast.
func ForwardInterleaved[T any](src, dst []T, n int, scale T, opts Options[T]) error {
	return interleavedTransform(true, src, dst, n, scale, opts)
}

// InverseInterleaved computes the inverse DFT over an interleaved layout.
func InverseInterleaved[T any](src, dst []T, n int, scale T, opts Options[T]) error {
	return interleavedTransform(false, src, dst, n, scale, opts)
}

func interleavedTransform[T any](negateImag bool, src, dst []T, n int, scale T, opts Options[T]) error {
	var reSrc, imSrc []T
	reSrcStride, imSrcStride := 2, 2
	if src == nil {
		reSrcStride, imSrcStride = 0, 0
	} else {
		reSrc = src
		imSrc = src[1:]
	}
	reDst := dst
	var imDst []T
	if len(dst) > 1 {
		imDst = dst[1:]
	}
	return run(opts, request[T]{
		reSrc: reSrc, imSrc: imSrc, reSrcStride: reSrcStride, imSrcStride: imSrcStride,
		reDst: reDst, imDst: imDst, reDstStride: 2, imDstStride: 2,
		n: n, negateImag: negateImag, scale: scale,
	})
}

// ForwardStrided computes the forward DFT with independent, caller-chosen
// strides for every one of the four arrays — the most general of the
// three shapes. reSrcStride/imSrcStride of 0 means the
// corresponding source is a broadcast constant (reSrc[0]/imSrc[0], or
// zero if that slice is empty).
func ForwardStrided[T any](reSrc, imSrc []T, reSrcStride, imSrcStride int, reDst, imDst []T, reDstStride, imDstStride int, n int, scale T, opts Options[T]) error {
	return run(opts, request[T]{
		reSrc: reSrc, imSrc: imSrc, reSrcStride: reSrcStride, imSrcStride: imSrcStride,
		reDst: reDst, imDst: imDst, reDstStride: reDstStride, imDstStride: imDstStride,
		n: n, negateImag: true, scale: scale,
	})
}

// InverseStrided computes the inverse DFT with independent strides.
func InverseStrided[T any](reSrc, imSrc []T, reSrcStride, imSrcStride int, reDst, imDst []T, reDstStride, imDstStride int, n int, scale T, opts Options[T]) error {
	return run(opts, request[T]{
		reSrc: reSrc, imSrc: imSrc, reSrcStride: reSrcStride, imSrcStride: imSrcStride,
		reDst: reDst, imDst: imDst, reDstStride: reDstStride, imDstStride: imDstStride,
		n: n, negateImag: false, scale: scale,
	})
}
