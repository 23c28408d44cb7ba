package match

import (
	"testing"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		// Identical strings
		{"", "", 0},
		{"a", "a", 0},
		{"scalar", "scalar", 0},

		// Empty vs non-empty
		{"", "abc", 3},
		{"abc", "", 3},

		// Single character operations
		{"a", "b", 1},    // substitution
		{"a", "ab", 1},   // insertion
		{"ab", "a", 1},   // deletion
		{"abc", "ab", 1}, // deletion

		// Multiple operations
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},

		// Case-sensitive
		{"ABC", "abc", 3},

		// Typical schema file typos
		{"collektion", "collection", 1},
		{"virtal", "virtual", 1},
		{"albun", "album", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Levenshtein(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}

			// Verify symmetry
			resultReverse := Levenshtein(tt.b, tt.a)
			if result != resultReverse {
				t.Errorf("Levenshtein symmetry failed: (%q, %q) = %d, (%q, %q) = %d",
					tt.a, tt.b, result, tt.b, tt.a, resultReverse)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected float64
	}{
		{"", "", 1.0},
		{"abc", "abc", 1.0},
		{"abc", "xyz", 0.0},
		{"abcd", "abce", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			result := Similarity(tt.a, tt.b)
			if result != tt.expected {
				t.Errorf("Similarity(%q, %q) = %f, want %f", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}
