package common

import "sort"

// UnknownStr is the fallback name for enum values outside the known range.
const UnknownStr = "unknown"

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// SortedKeys returns the keys of the map in ascending order.
// Map iteration order is random; every place that reports or persists
// per-key must go through this to stay deterministic.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
