package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// countOccurrences counts non-overlapping, word-boundary-respecting
// occurrences of term in text. A match must not be a substring of a longer
// word: the characters adjacent to the match, if any, must be non-word
// characters. Both inputs are expected to be normalized already.
func countOccurrences(text, term string) int {
	if term == "" || text == "" {
		return 0
	}

	count := 0
	offset := 0
	for {
		idx := strings.Index(text[offset:], term)
		if idx < 0 {
			return count
		}
		start := offset + idx
		end := start + len(term)

		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			count++
			offset = end
		} else {
			offset = start + 1
		}
	}
}

// boundaryBefore reports whether position start is preceded by a word boundary.
func boundaryBefore(text string, start int) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return !isWordChar(r)
}

// boundaryAfter reports whether position end is followed by a word boundary.
func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return !isWordChar(r)
}

// isWordChar mirrors the \w character class: letters, digits, underscore.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
