package lzss

import "errors"

var (
	// ErrInvalidArgument is returned when a stream is nil or a Config is
	// out of range.
	ErrInvalidArgument = errors.New("lzss: invalid argument")

	// ErrTruncated marks a stream that ends in the middle of a token. The
	// stages do not return it; they stop at the last whole token and report
	// the truncation to their Tracer.
	ErrTruncated = errors.New("lzss: truncated token")

	// ErrUncastable is returned by ForwardCast for a pointer whose source run
	// overlaps its own occurrence, which the project format cannot express.
	ErrUncastable = errors.New("lzss: pointer cannot be cast")
)
