package lzss

import "fmt"

// Config holds the parameters that both ends of a stream must agree on.
// A zero field takes its default value.
type Config struct {
	// OffsetBits is the width of an offset field. The window holds
	// 1<<OffsetBits bytes. The default is 12.
	OffsetBits uint8

	// LengthBits is the width of a length field. Lengths are stored biased
	// by MaxUncoded+1, so the longest match is 1<<LengthBits + MaxUncoded.
	// The default is 4.
	LengthBits uint8

	// SlideBits is the width of a slide field. The default is 4.
	SlideBits uint8

	// MaxUncoded is the longest run that is cheaper to send as literals.
	// The default is 2.
	MaxUncoded int

	// BufferSize is the number of slots in the history rings used by
	// AddSlide and ReverseCast. It must be at least WindowSize+SlideSize
	// and at most four times that.
	// The default is 2*WindowSize.
	BufferSize int

	// Placeholder is the byte the window is filled with before any input
	// has been seen. The default is '~'.
	Placeholder byte
}

// DefaultConfig is the configuration used by the package-level functions.
var DefaultConfig = Config{
	OffsetBits:  12,
	LengthBits:  4,
	SlideBits:   4,
	MaxUncoded:  2,
	BufferSize:  2 << 12,
	Placeholder: '~',
}

// WithDefaults returns c with every zero field set to its default.
func (c Config) WithDefaults() Config {
	if c.OffsetBits == 0 {
		c.OffsetBits = DefaultConfig.OffsetBits
	}
	if c.LengthBits == 0 {
		c.LengthBits = DefaultConfig.LengthBits
	}
	if c.SlideBits == 0 {
		c.SlideBits = DefaultConfig.SlideBits
	}
	if c.MaxUncoded == 0 {
		c.MaxUncoded = DefaultConfig.MaxUncoded
	}
	if c.BufferSize == 0 {
		c.BufferSize = 2 << c.OffsetBits
	}
	if c.Placeholder == 0 {
		c.Placeholder = DefaultConfig.Placeholder
	}
	return c
}

// WindowSize is the number of bytes in the sliding window.
func (c Config) WindowSize() int { return 1 << c.OffsetBits }

// MinCoded is the shortest match that is encoded as a pointer.
func (c Config) MinCoded() int { return c.MaxUncoded + 1 }

// MaxCoded is the longest match that fits in a length field.
func (c Config) MaxCoded() int { return 1<<c.LengthBits + c.MaxUncoded }

// SlideSize is one more than the largest slide value.
func (c Config) SlideSize() int { return 1 << c.SlideBits }

// maxBufferFactor bounds BufferSize, which may come from an untrusted
// frame header.
const maxBufferFactor = 4

// Validate reports whether c (after defaults are applied) describes a usable
// stream format.
func (c Config) Validate() error {
	c = c.WithDefaults()
	switch {
	case c.OffsetBits < 4 || c.OffsetBits > 24:
		return fmt.Errorf("%w: OffsetBits %d out of range [4,24]", ErrInvalidArgument, c.OffsetBits)
	case c.LengthBits > 16:
		return fmt.Errorf("%w: LengthBits %d out of range [1,16]", ErrInvalidArgument, c.LengthBits)
	case c.SlideBits > 16:
		return fmt.Errorf("%w: SlideBits %d out of range [1,16]", ErrInvalidArgument, c.SlideBits)
	case c.MaxUncoded < 1:
		return fmt.Errorf("%w: MaxUncoded must be at least 1", ErrInvalidArgument)
	case c.MaxCoded() >= c.WindowSize():
		return fmt.Errorf("%w: MaxCoded %d must be below WindowSize %d", ErrInvalidArgument, c.MaxCoded(), c.WindowSize())
	case c.BufferSize < c.WindowSize()+c.SlideSize():
		return fmt.Errorf("%w: BufferSize %d is smaller than WindowSize+SlideSize (%d)", ErrInvalidArgument, c.BufferSize, c.WindowSize()+c.SlideSize())
	case c.BufferSize > maxBufferFactor*(c.WindowSize()+c.SlideSize()):
		return fmt.Errorf("%w: BufferSize %d is larger than %d*(WindowSize+SlideSize)", ErrInvalidArgument, c.BufferSize, maxBufferFactor)
	}
	return nil
}
