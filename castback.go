package lzss

import "io"

// A pending match waits in the output-position ring until the output
// reaches the slot it occurs at.
type pending struct {
	offset int
	length int
	ok     bool
}

type reverseCaster struct {
	cfg   Config
	trace Tracer

	out   *tokenWriter
	slots []pending
	pos   ring
	head  int
}

func newReverseCaster(cfg Config, trace Tracer) *reverseCaster {
	return &reverseCaster{
		cfg:   cfg,
		trace: trace,
		slots: make([]pending, cfg.BufferSize),
		pos:   ring(cfg.BufferSize),
	}
}

func (r *reverseCaster) reverse(dst io.Writer, src io.Reader) error {
	in := newTokenReader(src, r.cfg)
	r.out = newTokenWriter(dst, r.cfg)

	for {
		tok, err := in.next(projectTokens)
		if err == io.EOF {
			break
		}
		if err == ErrTruncated {
			r.trace.Truncated(StageCastBack)
			break
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case Pointer:
			at := r.pos.next(r.head, t.Offset+t.Slide)
			r.slots[at] = pending{offset: t.Offset + t.Length, length: t.Length, ok: true}

		case Literal:
			for r.slots[r.head].ok {
				p := &r.slots[r.head]
				if err := r.flush(p); err != nil {
					return err
				}
				r.head = r.pos.next(r.head, p.length)
			}
			if err := r.emit(t); err != nil {
				return err
			}
			r.head = r.pos.next(r.head, 1)
		}
	}

	for i := 0; i < len(r.slots); i++ {
		if p := &r.slots[r.head]; p.ok {
			if err := r.flush(p); err != nil {
				return err
			}
		}
		r.head = r.pos.next(r.head, 1)
	}

	return r.out.close()
}

func (r *reverseCaster) flush(p *pending) error {
	p.ok = false
	return r.emit(Match{Offset: p.offset, Length: p.length})
}

func (r *reverseCaster) emit(t Token) error {
	if err := r.out.write(t); err != nil {
		return err
	}
	r.trace.Token(StageCastBack, t)
	return nil
}
