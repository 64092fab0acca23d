package filter

import "strings"

// Compare orders prefixes so the most specific one comes first. It
// returns a negative number when a sorts before b, zero only when the
// strings are equal, and a positive number otherwise.
//
// Longer strings sort first. Equal lengths sort by reverse
// lexicographic byte order.
func Compare(a, b string) int {
	if len(a) != len(b) {
		if len(a) > len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(b, a)
}

// Less reports whether a sorts strictly before b under Compare.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}
