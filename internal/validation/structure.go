// Package validation checks rendered LaTeX documents for structural
// well-formedness without compiling or interpreting them. Every check is
// mechanical: required declarations, marker pairs, and balance counts.
// Semantic correctness is explicitly out of scope.
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/rolecolor-agent/internal/types"
)

// environmentPattern captures the name in \begin{name} and \end{name} markers.
var environmentPattern = regexp.MustCompile(`\\(begin|end)\{(\w+)\}`)

// CheckStructure runs every structural check against the document and
// aggregates all findings into one report. Checks run unconditionally and
// independently; nothing short-circuits. The function is pure and never
// fails: any string, including the empty string, yields a report.
func CheckStructure(document string) *types.ValidationReport {
	report := &types.ValidationReport{
		Errors:   []string{},
		Warnings: []string{},
	}

	checkRequiredMarkers(document, report)
	checkBraceBalance(document, report)
	checkEnvironmentBalance(document, report)
	checkLineBreakStyle(document, report)

	report.Valid = len(report.Errors) == 0
	return report
}

// checkRequiredMarkers verifies the top-level declaration and the document
// begin/end pair. Each absence is reported independently.
func checkRequiredMarkers(document string, report *types.ValidationReport) {
	if !strings.Contains(document, `\documentclass`) {
		report.Errors = append(report.Errors, `Missing \documentclass declaration`)
	}
	if !strings.Contains(document, `\begin{document}`) {
		report.Errors = append(report.Errors, `Missing \begin{document}`)
	}
	if !strings.Contains(document, `\end{document}`) {
		report.Errors = append(report.Errors, `Missing \end{document}`)
	}
}

// checkBraceBalance compares raw counts of opening and closing braces.
func checkBraceBalance(document string, report *types.ValidationReport) {
	open := strings.Count(document, "{")
	closed := strings.Count(document, "}")
	if open != closed {
		report.Errors = append(report.Errors,
			fmt.Sprintf("Unbalanced braces: %d opening, %d closing", open, closed))
	}
}

// checkEnvironmentBalance verifies that every named \begin has a matching
// \end count. One error per imbalanced name, in sorted name order so reports
// are deterministic.
func checkEnvironmentBalance(document string, report *types.ValidationReport) {
	begins := make(map[string]int)
	ends := make(map[string]int)

	for _, match := range environmentPattern.FindAllStringSubmatch(document, -1) {
		if match[1] == "begin" {
			begins[match[2]]++
		} else {
			ends[match[2]]++
		}
	}

	names := make(map[string]bool)
	for name := range begins {
		names[name] = true
	}
	for name := range ends {
		names[name] = true
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	for _, name := range sorted {
		if begins[name] != ends[name] {
			report.Errors = append(report.Errors,
				fmt.Sprintf("Unbalanced environment '%s': %d begins, %d ends", name, begins[name], ends[name]))
		}
	}
}

// checkLineBreakStyle warns when the document uses the \\ line-break marker
// but its doubled form never appears, a likely sign of a mistyped break.
func checkLineBreakStyle(document string, report *types.ValidationReport) {
	if strings.Contains(document, `\\`) && !strings.Contains(document, `\\\\`) {
		report.Warnings = append(report.Warnings, `Check line breaks - use \\\\ for line breaks in LaTeX`)
	}
}
