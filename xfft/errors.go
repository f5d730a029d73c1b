package xfft

import "errors"

// ErrInvalidArgument reports aliasing violations, mismatched strides on
// aliased arrays, or a non-power-of-two size with Bluestein disabled. No
// destination buffer is touched before this is returned.
var ErrInvalidArgument = errors.New("xfft: invalid argument")

// ErrOutOfMemory reports scratch allocation failure. Go's allocator
// panics rather than returning an error on exhaustion, so this sentinel
// only fires when a caller-supplied Options.Allocator hook signals
// failure by returning a slice shorter than requested.
var ErrOutOfMemory = errors.New("xfft: out of memory")
