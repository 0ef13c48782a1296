package lzss

import "fmt"

// A Token is one element of a compressed stream. Classic streams carry
// Literal and Match; slide streams carry Literal, Pair and Triple; project
// streams carry Literal and Pointer.
type Token interface {
	// Len is the number of uncompressed bytes the token stands for.
	Len() int
	token()
}

// A Literal is a single uncompressed byte.
type Literal byte

// A Match copies Length bytes starting Offset bytes back from the current
// position.
type Match struct {
	Offset int
	Length int
}

// A Pair is a Match in a slide stream whose source run ends at a literal.
type Pair struct {
	Offset int
	Length int
}

// A Triple is a Match in a slide stream whose source run ends Slide encoded
// bytes past the nearest literal.
type Triple struct {
	Offset int
	Length int
	Slide  int
}

// A Pointer is a reference in a project stream. It is placed right after the
// literal its source run is anchored to. The copy it describes begins
// Offset+Slide bytes after the byte that follows that literal, and Offset
// bytes separate the end of the source run from the start of the copy.
type Pointer struct {
	Offset int
	Length int
	Slide  int
}

func (Literal) Len() int { return 1 }
func (m Match) Len() int { return m.Length }
func (p Pair) Len() int { return p.Length }
func (t Triple) Len() int { return t.Length }
func (p Pointer) Len() int { return p.Length }

func (Literal) token() {}
func (Match) token() {}
func (Pair) token() {}
func (Triple) token() {}
func (Pointer) token() {}

func (l Literal) String() string { return fmt.Sprintf("%q", byte(l)) }
func (m Match) String() string { return fmt.Sprintf("<%d,%d>", m.Length, m.Offset) }
func (p Pair) String() string { return fmt.Sprintf("(%d,%d)", p.Offset, p.Length) }
func (t Triple) String() string { return fmt.Sprintf("(%d,%d,%d)", t.Offset, t.Length, t.Slide) }
func (p Pointer) String() string { return fmt.Sprintf("[%d,%d,%d]", p.Offset, p.Length, p.Slide) }

// slideToken returns the slide-stream form of a reference: a Pair when
// slide is zero and a Triple otherwise.
func slideToken(offset, length, slide int) Token {
	if slide == 0 {
		return Pair{Offset: offset, Length: length}
	}
	return Triple{Offset: offset, Length: length, Slide: slide}
}

// A Stage identifies one of the stream transducers.
type Stage uint8

const (
	StageEncode Stage = iota
	StageDecode
	StageSlide
	StageCast
	StageCastBack
)

var stageNames = [...]string{
	StageEncode:   "encode",
	StageDecode:   "decode",
	StageSlide:    "slide",
	StageCast:     "cast",
	StageCastBack: "castback",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", s)
}
