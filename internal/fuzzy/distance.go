package fuzzy

import "unicode"

// Distance computes the edit distance between a and b: the minimum number of
// single-character insertions, deletions or substitutions needed to turn one
// into the other. Characters are compared after lower-casing, so
// Distance("ACME", "acme") == 0.
//
// Time complexity: O(len(a) * len(b))
// Space complexity: O(min(len(a), len(b))).
func Distance(a, b string) int {
	var m matrix
	return m.distance(fold(a), fold(b))
}

// fold lower-cases s rune by rune. The result has exactly as many runes as s.
func fold(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

// matrix holds the two live rows of the dynamic-programming table so a
// Selector can reuse them across candidates.
type matrix struct {
	prev []int
	curr []int
}

func (m *matrix) distance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Rows run over the shorter string.
	if len(a) > len(b) {
		a, b = b, a
	}

	width := len(a) + 1
	if cap(m.prev) < width {
		m.prev = make([]int, width)
		m.curr = make([]int, width)
	}
	prev := m.prev[:width]
	curr := m.curr[:width]

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}
