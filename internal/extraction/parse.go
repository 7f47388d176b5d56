// Package extraction turns raw resume text into the structured fields the
// renderer consumes. The primary path asks an LLM to emit a fixed header
// format (NAME:, CONTACT:, EXPERIENCE:, SKILLS:, EDUCATION:) which is then
// parsed deterministically; the parser is also usable on its own for
// pre-structured input.
package extraction

import (
	"strings"

	"github.com/jonathan/rolecolor-agent/internal/rendering"
	"github.com/jonathan/rolecolor-agent/internal/types"
)

// section identifiers for the header format.
const (
	sectionName       = "NAME:"
	sectionContact    = "CONTACT:"
	sectionSummary    = "SUMMARY:"
	sectionExperience = "EXPERIENCE:"
	sectionSkills     = "SKILLS:"
	sectionEducation  = "EDUCATION:"
)

// ParseStructuredFields parses header-formatted text into structured fields.
// NAME: and CONTACT: are single-line; SUMMARY:, EXPERIENCE:, SKILLS: and
// EDUCATION: collect subsequent lines until the next header. Missing sections
// leave their field empty; lines before any header are ignored.
func ParseStructuredFields(text string) *types.StructuredFields {
	fields := &types.StructuredFields{}

	var current *string
	var content []string

	flush := func() {
		if current != nil {
			*current = strings.Join(content, "\n")
		}
		content = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)

		switch {
		case strings.HasPrefix(line, sectionName):
			flush()
			current = nil
			fields.Name = strings.TrimSpace(strings.TrimPrefix(line, sectionName))
		case strings.HasPrefix(line, sectionContact):
			flush()
			current = nil
			fields.Contact = strings.TrimSpace(strings.TrimPrefix(line, sectionContact))
		case strings.HasPrefix(line, sectionSummary):
			flush()
			current = &fields.Summary
			if rest := strings.TrimSpace(strings.TrimPrefix(line, sectionSummary)); rest != "" {
				content = append(content, rest)
			}
		case strings.HasPrefix(line, sectionExperience):
			flush()
			current = &fields.Experience
			if rest := strings.TrimSpace(strings.TrimPrefix(line, sectionExperience)); rest != "" {
				content = append(content, rest)
			}
		case strings.HasPrefix(line, sectionSkills):
			flush()
			current = &fields.Skills
			if rest := strings.TrimSpace(strings.TrimPrefix(line, sectionSkills)); rest != "" {
				content = append(content, rest)
			}
		case strings.HasPrefix(line, sectionEducation):
			flush()
			current = &fields.Education
			if rest := strings.TrimSpace(strings.TrimPrefix(line, sectionEducation)); rest != "" {
				content = append(content, rest)
			}
		case line != "" && current != nil:
			content = append(content, line)
		}
	}
	flush()

	return fields
}

// EscapePlainFields returns a copy of fields with LaTeX special characters
// escaped in every value. Use it for fields sourced from plain text; fields
// produced by the extractor are already LaTeX-safe and must not be escaped
// again.
func EscapePlainFields(fields *types.StructuredFields) *types.StructuredFields {
	if fields == nil {
		return nil
	}
	return &types.StructuredFields{
		Name:       rendering.EscapeLaTeX(fields.Name),
		Contact:    rendering.EscapeLaTeX(fields.Contact),
		Summary:    rendering.EscapeLaTeX(fields.Summary),
		Experience: rendering.EscapeLaTeX(fields.Experience),
		Skills:     rendering.EscapeLaTeX(fields.Skills),
		Education:  rendering.EscapeLaTeX(fields.Education),
	}
}
