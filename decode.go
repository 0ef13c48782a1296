package lzss

import (
	"bufio"
	"fmt"
	"io"
)

type decoder struct {
	cfg   Config
	trace Tracer

	window []byte
	dict   ring
	// stage holds a copied run until all of it has been read, since the
	// run may overlap the bytes it is written over.
	stage []byte
}

func newDecoder(cfg Config, trace Tracer) *decoder {
	d := &decoder{
		cfg:    cfg,
		trace:  trace,
		window: make([]byte, cfg.WindowSize()),
		dict:   ring(cfg.WindowSize()),
		stage:  make([]byte, cfg.MaxCoded()),
	}
	for i := range d.window {
		d.window[i] = cfg.Placeholder
	}
	return d
}

func (d *decoder) decode(dst io.Writer, src io.Reader) error {
	in := newTokenReader(src, d.cfg)
	out := bufio.NewWriter(dst)
	next := 0

	for {
		tok, err := in.next(classicTokens)
		if err == io.EOF {
			break
		}
		if err == ErrTruncated {
			d.trace.Truncated(StageDecode)
			break
		}
		if err != nil {
			return err
		}
		d.trace.Token(StageDecode, tok)

		switch tok := tok.(type) {
		case Literal:
			out.WriteByte(byte(tok))
			d.window[next] = byte(tok)
			next = d.dict.next(next, 1)

		case Match:
			from := d.dict.back(next, tok.Offset)
			run := d.stage[:tok.Length]
			for i := range run {
				run[i] = d.window[d.dict.next(from, i)]
			}
			out.Write(run)
			for i, c := range run {
				d.window[d.dict.next(next, i)] = c
			}
			next = d.dict.next(next, tok.Length)
		}
	}

	if err := out.Flush(); err != nil {
		return fmt.Errorf("lzss: write output: %w", err)
	}
	return nil
}
