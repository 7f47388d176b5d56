package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/rolecolor-agent/internal/rendering"
	"github.com/jonathan/rolecolor-agent/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wellFormedDoc = `\documentclass{article}
\begin{document}
Hello World!
\begin{itemize}
\item one
\end{itemize}
\end{document}`

func TestCheckStructure_WellFormedDocument(t *testing.T) {
	report := CheckStructure(wellFormedDoc)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
}

func TestCheckStructure_MissingDocumentclass(t *testing.T) {
	report := CheckStructure(`\begin{document}\end{document}`)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors, `Missing \documentclass declaration`)
}

func TestCheckStructure_MissingEndDocument(t *testing.T) {
	doc := `\documentclass{article}
\begin{document}
Hello`

	report := CheckStructure(doc)
	assert.False(t, report.Valid)

	// Exactly one error names the missing end marker; the begin/end
	// document imbalance is reported by the environment check too.
	endErrors := 0
	for _, msg := range report.Errors {
		if msg == `Missing \end{document}` {
			endErrors++
		}
	}
	assert.Equal(t, 1, endErrors)
	assert.Contains(t, report.Errors, `Unbalanced environment 'document': 1 begins, 0 ends`)
}

func TestCheckStructure_UnbalancedBracesReportsBothCounts(t *testing.T) {
	doc := `\documentclass{article}
\begin{document}
\textbf{oops
\end{document}`

	report := CheckStructure(doc)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors, "Unbalanced braces: 4 opening, 3 closing")
}

func TestCheckStructure_UnbalancedEnvironments(t *testing.T) {
	doc := `\documentclass{article}
\begin{document}
\begin{itemize}
\item dangling
\end{document}`

	report := CheckStructure(doc)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors, "Unbalanced environment 'itemize': 1 begins, 0 ends")
}

func TestCheckStructure_ChecksRunIndependently(t *testing.T) {
	// A document violating everything at once reports every violation.
	report := CheckStructure(`\begin{itemize} {`)
	assert.False(t, report.Valid)
	assert.Contains(t, report.Errors, `Missing \documentclass declaration`)
	assert.Contains(t, report.Errors, `Missing \begin{document}`)
	assert.Contains(t, report.Errors, `Missing \end{document}`)
	assert.Contains(t, report.Errors, "Unbalanced braces: 2 opening, 1 closing")
	assert.Contains(t, report.Errors, "Unbalanced environment 'itemize': 1 begins, 0 ends")
}

func TestCheckStructure_LineBreakWarningIsNonFatal(t *testing.T) {
	doc := `\documentclass{article}
\begin{document}
line one \\ line two
\end{document}`

	report := CheckStructure(doc)
	assert.True(t, report.Valid)
	assert.Contains(t, report.Warnings, `Check line breaks - use \\\\ for line breaks in LaTeX`)
}

func TestCheckStructure_DoubledLineBreaksSuppressWarning(t *testing.T) {
	doc := `\documentclass{article}
\begin{document}
heading\\\\
\end{document}`

	report := CheckStructure(doc)
	assert.Empty(t, report.Warnings)
}

func TestCheckStructure_EmptyDocument(t *testing.T) {
	report := CheckStructure("")
	assert.False(t, report.Valid)
	assert.Len(t, report.Errors, 3)
	assert.Empty(t, report.Warnings)
}

func TestCheckStructure_Idempotent(t *testing.T) {
	doc := `\begin{itemize} unbalanced {`
	first := CheckStructure(doc)
	second := CheckStructure(doc)
	assert.Equal(t, first, second)
}

func TestCheckStructure_AcceptsRenderedTemplates(t *testing.T) {
	for _, id := range rendering.TemplateIDs() {
		doc, err := rendering.Render(id, types.Enabler, &types.StructuredFields{
			Name:       "Jane Doe",
			Contact:    "jane@example.com",
			Summary:    "Collaborative engineer.",
			Experience: "Acme - Engineer\n- Did the thing",
			Skills:     "Go",
			Education:  "B.S.",
		})
		require.NoError(t, err)

		report := CheckStructure(doc)
		assert.True(t, report.Valid, "template %s: %v", id, report.Errors)
	}
}

func TestValidateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.tex")
	require.NoError(t, os.WriteFile(path, []byte(wellFormedDoc), 0644))

	report, err := ValidateFile(path)
	require.NoError(t, err)
	assert.True(t, report.Valid)
}

func TestValidateFile_Missing(t *testing.T) {
	_, err := ValidateFile(filepath.Join(t.TempDir(), "nope.tex"))
	require.Error(t, err)
	var readErr *FileReadError
	assert.ErrorAs(t, err, &readErr)
}
