package lzss

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// Flag bits.
const (
	uncoded = false
	encoded = true

	pair   = false
	triple = true
)

// An alphabet selects which token set a stream carries.
type alphabet uint8

const (
	classicTokens alphabet = iota
	slideTokens
	projectTokens
)

// A tokenWriter packs tokens MSB-first into a byte stream.
type tokenWriter struct {
	buf *bufio.Writer
	bw  *bitio.Writer
	cfg Config
}

func newTokenWriter(dst io.Writer, cfg Config) *tokenWriter {
	buf := bufio.NewWriter(dst)
	return &tokenWriter{
		buf: buf,
		bw:  bitio.NewWriter(buf),
		cfg: cfg,
	}
}

// write appends t. The wire form follows from the token type: Match is
// written in the classic layout, Pair, Triple and Pointer in the slide
// layout.
func (w *tokenWriter) write(t Token) error {
	if err := w.check(t); err != nil {
		return err
	}
	switch t := t.(type) {
	case Literal:
		w.bw.TryWriteBool(uncoded)
		w.bw.TryWriteByte(byte(t))
	case Match:
		w.bw.TryWriteBool(encoded)
		w.offset(t.Offset)
		w.length(t.Length)
	case Pair:
		w.ref(t.Offset, t.Length, 0)
	case Triple:
		w.ref(t.Offset, t.Length, t.Slide)
	case Pointer:
		w.ref(t.Offset, t.Length, t.Slide)
	}
	if w.bw.TryError != nil {
		return fmt.Errorf("lzss: write token: %w", w.bw.TryError)
	}
	return nil
}

// check rejects a reference whose fields do not fit the configured widths.
func (w *tokenWriter) check(t Token) error {
	var offset, length, slide int
	minOffset, maxOffset := 1, w.cfg.WindowSize()
	switch t := t.(type) {
	case Literal:
		return nil
	case Match:
		offset, length = t.Offset, t.Length
	case Pair:
		offset, length = t.Offset, t.Length
	case Triple:
		offset, length, slide = t.Offset, t.Length, t.Slide
	case Pointer:
		offset, length, slide = t.Offset, t.Length, t.Slide
		minOffset, maxOffset = 0, w.cfg.WindowSize()-1
	default:
		return fmt.Errorf("%w: unknown token %T", ErrInvalidArgument, t)
	}
	switch {
	case offset < minOffset || offset > maxOffset:
		return fmt.Errorf("%w: %v: offset out of range [%d,%d]", ErrInvalidArgument, t, minOffset, maxOffset)
	case length < w.cfg.MinCoded() || length > w.cfg.MaxCoded():
		return fmt.Errorf("%w: %v: length out of range [%d,%d]", ErrInvalidArgument, t, w.cfg.MinCoded(), w.cfg.MaxCoded())
	case slide < 0 || slide >= w.cfg.SlideSize():
		return fmt.Errorf("%w: %v: slide out of range [0,%d)", ErrInvalidArgument, t, w.cfg.SlideSize())
	}
	return nil
}

func (w *tokenWriter) ref(offset, length, slide int) {
	w.bw.TryWriteBool(encoded)
	w.bw.TryWriteBool(slide != 0)
	w.offset(offset)
	w.length(length)
	if slide != 0 {
		w.bw.TryWriteBits(uint64(slide), w.cfg.SlideBits)
	}
}

// offset writes an offset field. A full window distance wraps to zero.
func (w *tokenWriter) offset(v int) {
	w.bw.TryWriteBits(uint64(v)&uint64(w.cfg.WindowSize()-1), w.cfg.OffsetBits)
}

func (w *tokenWriter) length(v int) {
	w.bw.TryWriteBits(uint64(v-w.cfg.MinCoded()), w.cfg.LengthBits)
}

// close pads the last byte with zero bits and flushes.
func (w *tokenWriter) close() error {
	if err := w.bw.Close(); err != nil {
		return fmt.Errorf("lzss: flush bits: %w", err)
	}
	if err := w.buf.Flush(); err != nil {
		return fmt.Errorf("lzss: flush: %w", err)
	}
	return nil
}

// A tokenReader unpacks tokens written by a tokenWriter.
type tokenReader struct {
	br   *bitio.Reader
	cfg  Config
	bits int64 // consumed so far
}

func newTokenReader(src io.Reader, cfg Config) *tokenReader {
	return &tokenReader{
		br:  bitio.NewReader(bufio.NewReader(src)),
		cfg: cfg,
	}
}

func (r *tokenReader) readBits(n uint8) (uint64, error) {
	v, err := r.br.ReadBits(n)
	if err == nil {
		r.bits += int64(n)
	}
	return v, err
}

// next reads one token of alphabet a. It returns io.EOF at the end of the
// stream and ErrTruncated if the stream ends inside a token.
//
// A writer pads its last byte with zero bits, which read as the start of a
// literal. A literal that begins inside the last byte and cannot be
// completed is therefore padding and reported as io.EOF.
func (r *tokenReader) next(a alphabet) (Token, error) {
	start := r.bits
	flag, err := r.readBits(1)
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, r.fail(err)
	}

	if flag == 0 {
		c, err := r.readBits(8)
		if err != nil {
			if isEOF(err) && start%8 != 0 {
				return nil, io.EOF
			}
			return nil, r.fail(err)
		}
		return Literal(c), nil
	}

	kind := pair
	if a != classicTokens {
		k, err := r.readBits(1)
		if err != nil {
			return nil, r.fail(err)
		}
		kind = k == 1
	}

	off, err := r.readBits(r.cfg.OffsetBits)
	if err != nil {
		return nil, r.fail(err)
	}
	n, err := r.readBits(r.cfg.LengthBits)
	if err != nil {
		return nil, r.fail(err)
	}
	offset := int(off)
	length := int(n) + r.cfg.MinCoded()
	if offset == 0 && a != projectTokens {
		offset = r.cfg.WindowSize()
	}

	var s int
	if kind == triple {
		v, err := r.readBits(r.cfg.SlideBits)
		if err != nil {
			return nil, r.fail(err)
		}
		s = int(v)
	}

	switch a {
	case classicTokens:
		return Match{Offset: offset, Length: length}, nil
	case slideTokens:
		if kind == triple {
			return Triple{Offset: offset, Length: length, Slide: s}, nil
		}
		return Pair{Offset: offset, Length: length}, nil
	default:
		return Pointer{Offset: offset, Length: length, Slide: s}, nil
	}
}

func (r *tokenReader) fail(err error) error {
	if isEOF(err) {
		return ErrTruncated
	}
	return fmt.Errorf("lzss: read token: %w", err)
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
