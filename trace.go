package lzss

import (
	"fmt"
	"io"
	"sync"
)

// A Tracer observes the tokens a stage produces (Encode, AddSlide,
// ForwardCast, ReverseCast) or consumes (Decode).
type Tracer interface {
	Token(stage Stage, t Token)

	// Truncated is called when a stage stops at a token that was cut short.
	Truncated(stage Stage)
}

type nopTracer struct{}

func (nopTracer) Token(Stage, Token) {}
func (nopTracer) Truncated(Stage)    {}

// A TextTracer writes a human-readable rendering of each token to W.
// Literals are written as they are; references are written in their
// bracketed forms, such as <length,distance> for a classic Match.
type TextTracer struct {
	W io.Writer

	mu   sync.Mutex
	last Stage
	any  bool
}

func (t *TextTracer) Token(stage Stage, tok Token) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.header(stage)
	if l, ok := tok.(Literal); ok {
		t.W.Write([]byte{byte(l)})
		return
	}
	fmt.Fprint(t.W, tok)
}

func (t *TextTracer) Truncated(stage Stage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.header(stage)
	fmt.Fprint(t.W, "<truncated>")
}

func (t *TextTracer) header(stage Stage) {
	if t.any && t.last == stage {
		return
	}
	if t.any {
		fmt.Fprintln(t.W)
	}
	fmt.Fprintf(t.W, "%s: ", stage)
	t.last = stage
	t.any = true
}

// A Recorder keeps every token it is shown, by stage.
type Recorder struct {
	mu        sync.Mutex
	tokens    map[Stage][]Token
	truncated map[Stage]bool
}

func (r *Recorder) Token(stage Stage, t Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tokens == nil {
		r.tokens = make(map[Stage][]Token)
	}
	r.tokens[stage] = append(r.tokens[stage], t)
}

func (r *Recorder) Truncated(stage Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.truncated == nil {
		r.truncated = make(map[Stage]bool)
	}
	r.truncated[stage] = true
}

// Tokens returns the tokens recorded for stage.
func (r *Recorder) Tokens(stage Stage) []Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Token(nil), r.tokens[stage]...)
}

// WasTruncated reports whether stage stopped at a truncated token.
func (r *Recorder) WasTruncated(stage Stage) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.truncated[stage]
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = nil
	r.truncated = nil
}
