package pairing

import "strconv"

// formatCode zero-pads val to the width of codesRangeRight's decimal
// representation, e.g. with an upper bound of 9999 the result is always
// four digits.
func formatCode(val, codesRangeRight int32) string {
	width := len(strconv.Itoa(int(codesRangeRight)))
	s := strconv.Itoa(int(val))
	if len(s) >= width {
		return s
	}
	return zeroes(width-len(s)) + s
}

func zeroes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}
