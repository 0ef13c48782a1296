package lzss

import (
	"bufio"
	"fmt"
	"io"
)

// encoder is the state of one Encode call.
type encoder struct {
	cfg    Config
	finder MatchFinder
	trace  Tracer

	window Window
	dict   ring
	look   ring

	// marks records, for recent output positions, whether the byte was
	// produced by a match.
	marks ring
	coded []bool
	out   int
}

func newEncoder(cfg Config, finder MatchFinder, trace Tracer) *encoder {
	e := &encoder{
		cfg:    cfg,
		finder: finder,
		trace:  trace,
		window: Window{
			Dict:      make([]byte, cfg.WindowSize()),
			Lookahead: make([]byte, cfg.MaxCoded()),
		},
		dict:  ring(cfg.WindowSize()),
		look:  ring(cfg.MaxCoded()),
		marks: ring(cfg.BufferSize),
		coded: make([]bool, cfg.BufferSize),
	}
	// Matching against the placeholder fill never gives a useful length,
	// and Decode starts from the same fill.
	for i := range e.window.Dict {
		e.window.Dict[i] = cfg.Placeholder
	}
	return e
}

func (e *encoder) encode(dst io.Writer, src io.Reader) error {
	in := bufio.NewReader(src)
	la := e.window.Lookahead

	n := 0
	for n < len(la) {
		c, err := in.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("lzss: read input: %w", err)
		}
		la[n] = c
		n++
	}
	if n == 0 {
		return nil
	}

	if err := e.finder.Reset(&e.window); err != nil {
		return fmt.Errorf("lzss: initialize match finder: %w", err)
	}

	out := newTokenWriter(dst, e.cfg)
	windowHead, lookHead := 0, 0
	eof := false

	for n > 0 {
		pos, length := e.finder.FindMatch(windowHead, lookHead)
		if length > n {
			// Stale lookahead bytes past the end of the input extended the
			// match.
			length = n
		}

		var offset int
		if length > e.cfg.MaxUncoded {
			offset = e.dict.dist(windowHead, pos)
			length = e.castable(offset, length)
		}

		var tok Token
		if length <= e.cfg.MaxUncoded {
			tok = Literal(la[lookHead])
			length = 1
		} else {
			tok = Match{Offset: offset, Length: length}
		}
		if err := out.write(tok); err != nil {
			return err
		}
		e.trace.Token(StageEncode, tok)
		e.mark(length, length > 1)

		for i := 0; i < length; i++ {
			e.finder.ReplaceChar(windowHead, la[lookHead])
			if !eof {
				c, err := in.ReadByte()
				switch {
				case err == io.EOF:
					eof = true
				case err != nil:
					return fmt.Errorf("lzss: read input: %w", err)
				default:
					la[lookHead] = c
				}
			}
			if eof {
				n--
			}
			windowHead = e.dict.next(windowHead, 1)
			lookHead = e.look.next(lookHead, 1)
		}
	}

	return out.close()
}

func (e *encoder) mark(n int, coded bool) {
	for i := 0; i < n; i++ {
		e.coded[e.marks.at(e.out)] = coded
		e.out++
	}
}

// castable shortens a match of the given offset and length so that the last
// byte of its source run lies at most SlideSize-1 coded bytes past a
// literal. Without that anchor the match cannot be carried through
// ForwardCast. It returns 0 if no prefix of the match qualifies.
func (e *encoder) castable(offset, length int) int {
	start := e.out - offset
	end := start + length - 1
	reach := e.cfg.SlideSize() - 1

	for p := end; p >= 0 && p >= start-reach; p-- {
		if e.coded[e.marks.at(p)] {
			continue
		}
		if end-p <= reach {
			return length
		}
		return p + reach - start + 1
	}
	return 0
}
