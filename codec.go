// Package lzss implements LZSS compression together with a set of stream
// transducers that rewrite the compressed token stream into a "project"
// format, in which every pointer is placed next to the run it copies from
// instead of where the copy occurs. That layout allows pattern matching over
// compressed text without decompressing it.
//
// The stages form a pipeline:
//
//	raw bytes -> Encode -> classic -> AddSlide -> slide -> ForwardCast -> project
//	project -> ReverseCast -> classic -> Decode -> raw bytes
//
// Each stage reads one bit stream to its end and writes another. All buffers
// belong to the call, so a Codec may be used from several goroutines at
// once.
package lzss

import (
	"bytes"
	"io"
)

// A Codec runs the pipeline stages with one configuration.
// The zero value uses DefaultConfig and a HashChain match finder.
type Codec struct {
	Config Config

	// NewMatchFinder returns the MatchFinder for one Encode call. If it is
	// nil, a HashChain is used.
	NewMatchFinder func() MatchFinder

	// Tracer, if set, is shown every token the stages produce or consume.
	Tracer Tracer
}

func (c *Codec) setup(dst io.Writer, src io.Reader) (Config, Tracer, error) {
	if dst == nil || src == nil {
		return Config{}, nil, ErrInvalidArgument
	}
	cfg := c.Config.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, nil, err
	}
	var t Tracer = nopTracer{}
	if c.Tracer != nil {
		t = c.Tracer
	}
	return cfg, t, nil
}

// Encode compresses src into a classic token stream.
func (c *Codec) Encode(dst io.Writer, src io.Reader) error {
	cfg, t, err := c.setup(dst, src)
	if err != nil {
		return err
	}
	var mf MatchFinder
	if c.NewMatchFinder != nil {
		mf = c.NewMatchFinder()
	} else {
		mf = &HashChain{}
	}
	return newEncoder(cfg, mf, t).encode(dst, src)
}

// Decode expands a classic token stream. A token cut short at the end of
// the stream is dropped.
func (c *Codec) Decode(dst io.Writer, src io.Reader) error {
	cfg, t, err := c.setup(dst, src)
	if err != nil {
		return err
	}
	return newDecoder(cfg, t).decode(dst, src)
}

// AddSlide rewrites a classic token stream as a slide stream.
func (c *Codec) AddSlide(dst io.Writer, src io.Reader) error {
	cfg, t, err := c.setup(dst, src)
	if err != nil {
		return err
	}
	return newAnnotator(cfg, t).annotate(dst, src)
}

// ForwardCast rewrites a slide stream as a project stream, emitting each
// pointer once, right after the literal its source run is anchored to.
func (c *Codec) ForwardCast(dst io.Writer, src io.Reader) error {
	cfg, t, err := c.setup(dst, src)
	if err != nil {
		return err
	}
	return newCaster(cfg, t).cast(dst, src)
}

// ReverseCast rewrites a project stream as a classic token stream.
func (c *Codec) ReverseCast(dst io.Writer, src io.Reader) error {
	cfg, t, err := c.setup(dst, src)
	if err != nil {
		return err
	}
	return newReverseCaster(cfg, t).reverse(dst, src)
}

// Pack runs Encode, AddSlide and ForwardCast, writing a project stream.
func (c *Codec) Pack(dst io.Writer, src io.Reader) error {
	if _, _, err := c.setup(dst, src); err != nil {
		return err
	}
	var classic, slid bytes.Buffer
	if err := c.Encode(&classic, src); err != nil {
		return err
	}
	if err := c.AddSlide(&slid, &classic); err != nil {
		return err
	}
	return c.ForwardCast(dst, &slid)
}

// Unpack runs ReverseCast and Decode, turning a project stream back into
// the original bytes.
func (c *Codec) Unpack(dst io.Writer, src io.Reader) error {
	if _, _, err := c.setup(dst, src); err != nil {
		return err
	}
	var classic bytes.Buffer
	if err := c.ReverseCast(&classic, src); err != nil {
		return err
	}
	return c.Decode(dst, &classic)
}

var std Codec

// Encode compresses src with DefaultConfig.
func Encode(dst io.Writer, src io.Reader) error { return std.Encode(dst, src) }

// Decode expands a classic stream produced with DefaultConfig.
func Decode(dst io.Writer, src io.Reader) error { return std.Decode(dst, src) }

// AddSlide annotates a classic stream produced with DefaultConfig.
func AddSlide(dst io.Writer, src io.Reader) error { return std.AddSlide(dst, src) }

// ForwardCast casts a slide stream produced with DefaultConfig.
func ForwardCast(dst io.Writer, src io.Reader) error { return std.ForwardCast(dst, src) }

// ReverseCast casts a project stream produced with DefaultConfig back to a
// classic stream.
func ReverseCast(dst io.Writer, src io.Reader) error { return std.ReverseCast(dst, src) }

// Pack encodes src into a project stream with DefaultConfig.
func Pack(dst io.Writer, src io.Reader) error { return std.Pack(dst, src) }

// Unpack decodes a project stream produced by Pack.
func Unpack(dst io.Writer, src io.Reader) error { return std.Unpack(dst, src) }
