package lzss

import (
	"fmt"
	"io"
)

// A descriptor is a buffered token of a slide stream. Literals have length 1.
type descriptor struct {
	ch      byte
	offset  int
	length  int
	slide   int
	emitted bool
}

func (d *descriptor) pointer() Pointer {
	return Pointer{Offset: d.offset - d.length, Length: d.length, Slide: d.slide}
}

type caster struct {
	cfg   Config
	trace Tracer

	in  *tokenReader
	out *tokenWriter
	eof bool

	// buf is a lookahead over the next len(buf) tokens of the input.
	buf   []descriptor
	slots ring
	head  int
	tail  int
	n     int
}

// The lookahead must hold every pointer whose source run is anchored at
// the head, which is at most WindowSize+SlideSize bytes (and so tokens)
// away.
func newCaster(cfg Config, trace Tracer) *caster {
	size := cfg.WindowSize() + cfg.SlideSize()
	return &caster{
		cfg:   cfg,
		trace: trace,
		buf:   make([]descriptor, size),
		slots: ring(size),
	}
}

func (c *caster) cast(dst io.Writer, src io.Reader) error {
	c.in = newTokenReader(src, c.cfg)
	c.out = newTokenWriter(dst, c.cfg)

	for c.n < len(c.buf) && !c.eof {
		if err := c.fill(); err != nil {
			return err
		}
	}

	for c.n > 0 {
		if err := c.resolve(); err != nil {
			return err
		}

		d := &c.buf[c.head]
		if d.length == 1 {
			if err := c.emit(Literal(d.ch)); err != nil {
				return err
			}
		} else if !d.emitted {
			// Nothing was anchored here; emit the pointer where it occurs.
			if err := c.emitPointer(d); err != nil {
				return err
			}
		}

		c.head = c.slots.next(c.head, 1)
		c.n--
		if !c.eof {
			if err := c.fill(); err != nil {
				return err
			}
		}
	}

	return c.out.close()
}

// resolve emits, in stream order, every pending pointer whose source run is
// anchored at the head: its occurrence lies offset-length+slide bytes ahead.
func (c *caster) resolve() error {
	reach := c.cfg.WindowSize() + c.cfg.SlideSize()
	distance := 0
	i := c.head
	for j := 0; j < c.n && distance < reach; j++ {
		d := &c.buf[i]
		if !d.emitted && d.length > 1 && distance == d.offset-d.length+d.slide {
			if err := c.emitPointer(d); err != nil {
				return err
			}
		}
		distance += d.length
		i = c.slots.next(i, 1)
	}
	return nil
}

func (c *caster) emitPointer(d *descriptor) error {
	if d.offset < d.length {
		return fmt.Errorf("%w: offset %d is shorter than length %d", ErrUncastable, d.offset, d.length)
	}
	d.emitted = true
	return c.emit(d.pointer())
}

func (c *caster) emit(t Token) error {
	if err := c.out.write(t); err != nil {
		return err
	}
	c.trace.Token(StageCast, t)
	return nil
}

// fill reads the next token into the tail slot.
func (c *caster) fill() error {
	tok, err := c.in.next(slideTokens)
	switch {
	case err == io.EOF:
		c.eof = true
		return nil
	case err == ErrTruncated:
		c.trace.Truncated(StageCast)
		c.eof = true
		return nil
	case err != nil:
		return err
	}

	d := descriptor{length: tok.Len()}
	switch t := tok.(type) {
	case Literal:
		d.ch = byte(t)
	case Pair:
		d.offset = t.Offset
	case Triple:
		d.offset, d.slide = t.Offset, t.Slide
	}
	c.buf[c.tail] = d
	c.tail = c.slots.next(c.tail, 1)
	c.n++
	return nil
}
