package lzss

// A Window is the encoder's view of the input: Dict is the circular
// dictionary of committed bytes and Lookahead is the circular buffer of bytes
// waiting to be matched. Both belong to a single Encode call.
type Window struct {
	Dict      []byte
	Lookahead []byte
}

// A MatchFinder performs the search stage of Encode, looking for the
// longest run in the dictionary that equals the start of the lookahead.
//
// The cast pipeline can only express matches whose source run lies entirely
// in bytes already committed by ReplaceChar during the current stream, so a
// MatchFinder must never return a match that reaches into the placeholder
// fill, overlaps the lookahead (length greater than distance), or lies a
// whole window back.
type MatchFinder interface {
	// Reset prepares the MatchFinder to search w for a new stream. It is
	// called after w.Dict has been filled with the placeholder byte and the
	// first bytes of input have been loaded into w.Lookahead.
	Reset(w *Window) error

	// FindMatch returns the dictionary index and length of the longest
	// match for the lookahead bytes starting at lookaheadHead. windowHead
	// is the dictionary slot the next committed byte will be stored in.
	// A length of 0 means there is no match.
	FindMatch(windowHead, lookaheadHead int) (pos, length int)

	// ReplaceChar stores c in dictionary slot windowHead, overwriting the
	// oldest byte, and updates the search structures.
	ReplaceChar(windowHead int, c byte)
}

// BruteForce is a MatchFinder that compares the lookahead against every
// committed position in the window.
type BruteForce struct {
	w      *Window
	filled int
}

func (b *BruteForce) Reset(w *Window) error {
	if w == nil || len(w.Dict) == 0 || len(w.Lookahead) == 0 {
		return ErrInvalidArgument
	}
	b.w = w
	b.filled = 0
	return nil
}

func (b *BruteForce) ReplaceChar(windowHead int, c byte) {
	b.w.Dict[windowHead] = c
	if b.filled < len(b.w.Dict) {
		b.filled++
	}
}

func (b *BruteForce) FindMatch(windowHead, lookaheadHead int) (pos, length int) {
	dict := ring(len(b.w.Dict))
	look := ring(len(b.w.Lookahead))
	maxDist := b.filled
	if maxDist > int(dict)-1 {
		maxDist = int(dict) - 1
	}
	first := b.w.Lookahead[lookaheadHead]

	for dist := 1; dist <= maxDist; dist++ {
		i := dict.back(windowHead, dist)
		if b.w.Dict[i] != first {
			continue
		}
		limit := dist
		if limit > int(look) {
			limit = int(look)
		}
		n := 1
		for n < limit && b.w.Dict[dict.next(i, n)] == b.w.Lookahead[look.next(lookaheadHead, n)] {
			n++
		}
		if n > length {
			pos, length = i, n
			if n == int(look) {
				break
			}
		}
	}
	return pos, length
}
