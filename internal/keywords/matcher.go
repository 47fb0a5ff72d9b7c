package keywords

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/tally/internal/core/domain"
)

// CountOccurrences counts whole-word occurrences of alias in text that has
// already been passed through Normalize.
//
// The alias is lower-cased with the same rule and matched literally. A
// match counts only when both of its edges sit on a word boundary, that is
// where a word character (letter, number or underscore) meets a non-word
// character or the end of the text. The scan runs once from left to right
// and never overlaps counted matches.
func CountOccurrences(normalized, alias string) (int, error) {
	if alias == "" {
		return 0, domain.ErrEmptyAlias
	}

	needle := Normalize(alias)
	count := 0
	pos := 0

	for pos+len(needle) <= len(normalized) {
		i := strings.Index(normalized[pos:], needle)
		if i < 0 {
			break
		}

		start := pos + i
		end := start + len(needle)
		if isBoundary(normalized, start) && isBoundary(normalized, end) {
			count++
			pos = end
			continue
		}

		// Rejected candidate: retry one character further on.
		_, size := utf8.DecodeRuneInString(normalized[start:])
		pos = start + size
	}

	return count, nil
}

// isBoundary reports whether a word boundary sits at byte offset i of s.
func isBoundary(s string, i int) bool {
	before := false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}

	after := false
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}

	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
