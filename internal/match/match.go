package match

import (
	"strings"
)

// Ratio computes a similarity score in [0, 1] between two strings based on
// their longest common subsequence. Inputs are compared lowercased and
// whitespace-trimmed. Two empty strings score 1.
//
// The default grouping path does not use this; it exists for opt-in
// near-duplicate title merging (see consolidate.WithFuzzyMerge).
func Ratio(a, b string) float64 {
	ra := []rune(strings.ToLower(strings.TrimSpace(a)))
	rb := []rune(strings.ToLower(strings.TrimSpace(b)))

	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}

	return 2 * float64(lcsLength(ra, rb)) / float64(total)
}

// lcsLength returns the length of the longest common subsequence of a and b
// using a rolling single-row DP table.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	row := make([]int, len(b)+1)
	for _, ca := range a {
		prev := 0 // row[j-1] from the previous iteration of the outer loop
		for j, cb := range b {
			cur := row[j+1]
			if ca == cb {
				row[j+1] = prev + 1
			} else if row[j] > row[j+1] {
				row[j+1] = row[j]
			}
			prev = cur
		}
	}
	return row[len(b)]
}
