// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/rolecolor-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the character width of score bars
	barWidth = 20
	// maxKeywordsToShow is the default number of keywords to display
	maxKeywordsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScoreResult outputs the score distribution with bars, highest first.
func (p *Printer) PrintScoreResult(result *types.ScoreResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Dominant role: %s\n", result.DominantRole))
	sb.WriteString(fmt.Sprintf("Matched terms: %d\n\n", result.TotalMatchedTerms))

	for _, role := range rolesByScore(result.NormalizedScores) {
		share := result.NormalizedScores[role]
		sb.WriteString(fmt.Sprintf("%-9s %s %5.1f%%\n", role, scoreBar(share), share*100))
	}

	p.printBox("ROLECOLOR SCORES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTopKeywords outputs the strongest matched keywords.
func (p *Printer) PrintTopKeywords(keywords []types.RankedKeyword) {
	if len(keywords) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(keywords), maxKeywordsToShow)
	for i := 0; i < count; i++ {
		kw := keywords[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (%s)\n", i+1, kw.Term, kw.Role))
		sb.WriteString(fmt.Sprintf("    weight %.1f × %d occurrence(s)\n", kw.Weight, kw.Count))
	}
	if len(keywords) > maxKeywordsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more", len(keywords)-maxKeywordsToShow))
	}

	p.printBox("TOP KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidationReport outputs structural validation errors and warnings.
func (p *Printer) PrintValidationReport(report *types.ValidationReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	if report.Valid {
		sb.WriteString("Document structure: OK\n")
	} else {
		sb.WriteString(fmt.Sprintf("Document structure: %d error(s)\n", len(report.Errors)))
	}

	for _, e := range report.Errors {
		sb.WriteString(fmt.Sprintf("  ✗ %s\n", e))
	}
	for _, w := range report.Warnings {
		sb.WriteString(fmt.Sprintf("  ! %s\n", w))
	}

	p.printBox("VALIDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs a generated summary.
func (p *Printer) PrintSummary(summary string) {
	if strings.TrimSpace(summary) == "" {
		return
	}
	p.printBox("GENERATED SUMMARY", summary)
}

// PrintFields outputs extracted structured fields.
func (p *Printer) PrintFields(fields *types.StructuredFields) {
	if fields == nil || fields.IsEmpty() {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:    %s\n", firstLine(fields.Name)))
	sb.WriteString(fmt.Sprintf("Contact: %s\n", firstLine(fields.Contact)))
	sb.WriteString(fmt.Sprintf("Skills:  %s", firstLine(fields.Skills)))

	p.printBox("EXTRACTED FIELDS", sb.String())
}

// scoreBar renders a share in [0,1] as a fixed-width bar.
func scoreBar(share float64) string {
	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}
	filled := int(share*barWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// rolesByScore returns roles ordered by descending score, ties by name.
func rolesByScore(scores map[types.RoleColor]float64) []types.RoleColor {
	roles := make([]types.RoleColor, 0, len(scores))
	for role := range scores {
		roles = append(roles, role)
	}
	sort.SliceStable(roles, func(i, j int) bool {
		if scores[roles[i]] != scores[roles[j]] {
			return scores[roles[i]] > scores[roles[j]]
		}
		return roles[i] < roles[j]
	})
	return roles
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
