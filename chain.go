package lzss

// HashChain is an implementation of the MatchFinder interface that
// uses hash chaining to find longer matches.
type HashChain struct {
	// SearchLen is how many entries to examine on the hash chain.
	// The default is 32.
	SearchLen int

	w *Window

	// table and chain hold absolute stream positions plus one, so that zero
	// means "none".
	table [maxTableSize]int
	chain []int

	// total is the number of bytes committed so far.
	total int
}

const (
	maxTableSize = 1 << 14
	shift        = 32 - 14
	// tableMask is redundant, but helps the compiler eliminate bounds
	// checks.
	tableMask = maxTableSize - 1
)

const hashMul32 = 0x1e35a7bd

func hash3(a, b, c byte) uint32 {
	u := uint32(a) | uint32(b)<<8 | uint32(c)<<16
	return (u * hashMul32) >> shift
}

func (q *HashChain) Reset(w *Window) error {
	if w == nil || len(w.Dict) == 0 || len(w.Lookahead) == 0 {
		return ErrInvalidArgument
	}
	if q.SearchLen == 0 {
		q.SearchLen = 32
	}
	q.w = w
	q.table = [maxTableSize]int{}
	if cap(q.chain) >= len(w.Dict) {
		q.chain = q.chain[:len(w.Dict)]
		for i := range q.chain {
			q.chain[i] = 0
		}
	} else {
		q.chain = make([]int, len(w.Dict))
	}
	q.total = 0
	return nil
}

// ReplaceChar commits c. Once three bytes are available, the sequence that
// starts two bytes back is entered into its hash chain.
func (q *HashChain) ReplaceChar(windowHead int, c byte) {
	dict := ring(len(q.w.Dict))
	q.w.Dict[windowHead] = c
	q.total++
	if q.total < 3 {
		return
	}
	start := dict.back(windowHead, 2)
	h := hash3(q.w.Dict[start], q.w.Dict[dict.next(start, 1)], c)
	q.chain[start] = q.table[h&tableMask]
	q.table[h&tableMask] = q.total - 2
}

func (q *HashChain) FindMatch(windowHead, lookaheadHead int) (pos, length int) {
	dict := ring(len(q.w.Dict))
	look := ring(len(q.w.Lookahead))
	la := q.w.Lookahead
	if len(la) < 3 {
		return 0, 0
	}
	h := hash3(la[lookaheadHead], la[look.next(lookaheadHead, 1)], la[look.next(lookaheadHead, 2)])

	candidate := q.table[h&tableMask] - 1
	for i := 0; i < q.SearchLen && candidate >= 0; i++ {
		dist := q.total - candidate
		if dist > int(dict)-1 {
			break
		}
		idx := dict.at(candidate)
		limit := dist
		if limit > int(look) {
			limit = int(look)
		}
		n := 0
		for n < limit && q.w.Dict[dict.next(idx, n)] == la[look.next(lookaheadHead, n)] {
			n++
		}
		if n > length {
			pos, length = idx, n
			if n == int(look) {
				break
			}
		}
		candidate = q.chain[idx] - 1
	}
	return pos, length
}
