// Package match provides name normalization and edit-distance scoring for
// suggesting the closest known name when a schema file references one that
// does not exist.
package match

import (
	"sort"
	"strings"
	"unicode"
)

// closeEnough is the minimum normalized similarity for a candidate to be
// offered as a suggestion.
const closeEnough = 0.5

// maxSuggestions caps how many candidates one diagnostic carries.
const maxSuggestions = 3

// Closest returns the candidates most similar to input, best first.
// Candidates scoring below the similarity cutoff are left out, so a wild
// typo yields no suggestions rather than a misleading one.
func Closest(input string, candidates []string) []string {
	type scored struct {
		name  string
		score float64
	}

	norm := NormalizeIdent(input)

	var ranked []scored

	for _, c := range candidates {
		score := Similarity(norm, NormalizeIdent(c))
		if score >= closeEnough {
			ranked = append(ranked, scored{name: c, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > maxSuggestions {
		ranked = ranked[:maxSuggestions]
	}

	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.name
	}

	return out
}

// NormalizeIdent normalizes an identifier for fuzzy matching.
// The normalization pipeline:
// 1. Tokenize CamelCase.
// 2. Case-fold to lower.
// 3. Strip separators (_, -, spaces).
func NormalizeIdent(s string) string {
	tokens := tokenizeCamelCase(s)

	joined := strings.Join(tokens, "")
	joined = strings.ToLower(joined)

	return stripSeparators(joined)
}

// tokenizeCamelCase splits a CamelCase or camelCase string into tokens.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customerName" -> ["customer", "Name"]
//   - "XMLParser" -> ["XML", "Parser"]
func tokenizeCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i == 0 {
			current.WriteRune(r)

			continue
		}

		if shouldStartNewToken(runes, i) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)
	isPrevSep := isSeparator(prevRune)

	// Transition from lowercase to uppercase: start new token
	// e.g., "orderID" -> split before 'I'
	if isUpper && !isPrevUpper && !isPrevSep {
		return true
	}

	// End of acronym: check if next character is lowercase
	// e.g., "XMLParser" -> "XML" + "Parser", split before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
	if isUpper && isPrevUpper && hasNextLower {
		return true
	}

	return false
}

func stripSeparators(s string) string {
	var result strings.Builder

	result.Grow(len(s))

	for _, r := range s {
		if !isSeparator(r) {
			result.WriteRune(r)
		}
	}

	return result.String()
}
