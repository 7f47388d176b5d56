package rendering

import "strings"

// latexReplacer rewrites characters that LaTeX treats specially. Backslash
// and the caret/tilde need command forms; the rest take a simple backslash
// prefix.
var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX makes arbitrary text safe to embed in a LaTeX document. The
// field extractor applies it to every value it produces; the renderer itself
// substitutes values verbatim.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}
	return latexReplacer.Replace(text)
}
