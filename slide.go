package lzss

import "io"

// A history mark says how a position in the uncompressed output was
// produced.
type mark uint8

const (
	unseen mark = iota
	literal
	copied
)

type annotator struct {
	cfg   Config
	trace Tracer

	history []mark
	hist    ring
	cursor  int
}

func newAnnotator(cfg Config, trace Tracer) *annotator {
	return &annotator{
		cfg:     cfg,
		trace:   trace,
		history: make([]mark, cfg.BufferSize),
		hist:    ring(cfg.BufferSize),
	}
}

func (a *annotator) annotate(dst io.Writer, src io.Reader) error {
	in := newTokenReader(src, a.cfg)
	out := newTokenWriter(dst, a.cfg)

	for {
		tok, err := in.next(classicTokens)
		if err == io.EOF {
			break
		}
		if err == ErrTruncated {
			a.trace.Truncated(StageSlide)
			break
		}
		if err != nil {
			return err
		}

		how := literal
		if m, ok := tok.(Match); ok {
			tok = slideToken(m.Offset, m.Length, a.slide(m))
			how = copied
		}
		for i := 0; i < tok.Len(); i++ {
			a.history[a.cursor] = how
			a.cursor = a.hist.next(a.cursor, 1)
		}

		if err := out.write(tok); err != nil {
			return err
		}
		a.trace.Token(StageSlide, tok)
	}

	return out.close()
}

// slide counts the copied positions between the last byte of m's source run
// and the literal before them, up to SlideSize-1.
func (a *annotator) slide(m Match) int {
	last := a.hist.back(a.cursor, m.Offset-m.Length+1)
	s := 0
	for a.history[last] == copied && s < a.cfg.SlideSize()-1 {
		s++
		last = a.hist.back(last, 1)
	}
	return s
}
