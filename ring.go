package lzss

// A ring is the capacity of a circular buffer. Its methods map logical
// positions, which may run past the end or go negative, onto slots.
type ring int

// at returns the slot for logical position i.
func (r ring) at(i int) int {
	i %= int(r)
	if i < 0 {
		i += int(r)
	}
	return i
}

// next returns the slot n positions after slot i.
func (r ring) next(i, n int) int {
	return r.at(i + n)
}

// back returns the slot n positions before slot i.
func (r ring) back(i, n int) int {
	return r.at(i - n)
}

// dist returns how many positions slot from lies behind slot to. The result
// is in [1, r]; equal slots are a whole turn apart.
func (r ring) dist(to, from int) int {
	if to > from {
		return to - from
	}
	return to + int(r) - from
}
