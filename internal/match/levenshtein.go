package match

// Levenshtein computes the edit distance between two strings: the minimum
// number of single-character insertions, deletions, or substitutions that
// turn one into the other.
//
// Time complexity: O(len(a) * len(b))
// Space complexity: O(min(len(a), len(b))).
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// Ensure a is the shorter string for space optimization
	if len(a) > len(b) {
		a, b = b, a
	}

	// Use two rows instead of full matrix for space optimization
	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min3(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity computes a normalized similarity score between 0 and 1.
// 1.0 means identical strings, 0.0 means completely different.
// The score is: 1 - (distance / max(len(a), len(b))).
func Similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	maxLen := max(len(b), len(a))

	distance := Levenshtein(a, b)

	return 1.0 - float64(distance)/float64(maxLen)
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}

		return c
	}

	if b < c {
		return b
	}

	return c
}
