// Package fuzzy provides edit-distance similarity for approximate
// word matching.
package fuzzy

import "unicode/utf8"

// Distance returns the Levenshtein distance between a and b: the
// minimum number of single-rune insertions, deletions, and
// substitutions transforming one into the other. Runs in O(|a|*|b|)
// time with two rolling rows, keeping auxiliary space at
// O(min(|a|,|b|)).
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	// Keep the shorter string on the row axis.
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// Similarity normalizes edit distance into [0,1], where 1 means the
// strings are equal. Both strings empty also yields 1.
func Similarity(a, b string) float64 {
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1
	}
	return float64(maxLen-Distance(a, b)) / float64(maxLen)
}
