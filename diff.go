package lzss

import (
	"bufio"
	"fmt"
	"io"
)

// Equal reports whether a and b yield exactly the same bytes, including
// the same length.
func Equal(a, b io.Reader) (bool, error) {
	if a == nil || b == nil {
		return false, ErrInvalidArgument
	}
	ra, rb := bufio.NewReader(a), bufio.NewReader(b)
	for {
		ca, errA := ra.ReadByte()
		cb, errB := rb.ReadByte()
		if errA != nil && errA != io.EOF {
			return false, fmt.Errorf("lzss: diff: %w", errA)
		}
		if errB != nil && errB != io.EOF {
			return false, fmt.Errorf("lzss: diff: %w", errB)
		}
		switch {
		case errA == io.EOF && errB == io.EOF:
			return true, nil
		case errA == io.EOF || errB == io.EOF:
			return false, nil
		case ca != cb:
			return false, nil
		}
	}
}
