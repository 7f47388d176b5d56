package scoring

import "strings"

// NormalizeText prepares raw document text for lexical matching: it
// lowercases the input and collapses every run of whitespace (including
// newlines) to a single space. Hyphens are preserved so compound terms like
// "cross-functional" stay distinct from their spaced spellings.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
