package rendering

import "strings"

// FormatContentBlock converts a multi-line content block into LaTeX. Lines
// beginning with a bullet marker ("-" or "•") are grouped into itemize
// environments: the environment opens before the first bullet of a run and
// closes after the last, so a block can alternate between headings and
// bullet runs. Non-bullet lines become bold standalone lines. An itemize
// left open when the block ends is always closed.
func FormatContentBlock(block string) string {
	lines := strings.Split(block, "\n")
	formatted := make([]string, 0, len(lines))
	inItemize := false

	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case isBulletLine(line):
			if !inItemize {
				formatted = append(formatted, `\begin{itemize}[leftmargin=*]`)
				inItemize = true
			}
			formatted = append(formatted, `\item `+stripBulletMarker(line))
		case line != "":
			if inItemize {
				formatted = append(formatted, `\end{itemize}`)
				inItemize = false
			}
			formatted = append(formatted, `\textbf{`+line+`}\\`)
		}
	}

	if inItemize {
		formatted = append(formatted, `\end{itemize}`)
	}

	return strings.Join(formatted, "\n")
}

// isBulletLine reports whether the line starts with a bullet marker.
func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•")
}

// stripBulletMarker removes leading bullet markers and surrounding space.
func stripBulletMarker(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "-• "))
}
