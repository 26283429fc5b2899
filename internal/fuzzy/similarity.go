package fuzzy

import "unicode/utf8"

// Similarity normalizes a precomputed edit distance between a and b into a
// score in [0,1]: 1 - distance / max(len(a), len(b)), lengths in runes.
// Two empty strings are a perfect match.
func Similarity(a, b string, distance int) float64 {
	return score(utf8.RuneCountInString(a), utf8.RuneCountInString(b), distance)
}

// Compare returns the similarity of a and b.
func Compare(a, b string) float64 {
	return Similarity(a, b, Distance(a, b))
}

func score(lenA, lenB, distance int) float64 {
	maxLen := max(lenA, lenB)
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
