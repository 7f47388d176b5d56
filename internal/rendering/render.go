// Package rendering produces LaTeX documents from versioned templates and
// structured field sets. Rendering is pure substitution: templates are
// static embedded constants, each slot is filled exactly once, and missing
// fields fall back to documented defaults. User-supplied values are passed
// as template data, never spliced into template source, so content that
// happens to look like a placeholder cannot collide with one.
package rendering

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/jonathan/rolecolor-agent/internal/types"
)

// Template identifiers. Templates are versioned constants; they are never
// constructed from data at runtime.
const (
	// TemplateFull is the complete resume layout with header, summary
	// badge, experience, skills, and education sections.
	TemplateFull = "full"
	// TemplateSummary is the summary-only layout with placeholder sections.
	TemplateSummary = "summary"
)

// Default slot values substituted when a structured field is empty.
const (
	DefaultName       = "Your Name"
	DefaultContact    = "email@example.com | (555) 123-4567"
	DefaultSummary    = "Professional summary here"
	DefaultExperience = "Experience details here"
	DefaultSkills     = "Skills here"
	DefaultEducation  = "Education details here"
)

//go:embed templates/*.tex
var templateFiles embed.FS

var (
	templatesOnce sync.Once
	templates     map[string]*template.Template
)

// slotData carries the typed slot values handed to a template. Each exported
// field is one slot; templates reference slots by name and nothing else.
type slotData struct {
	AccentColor string
	AccentRGB   string
	Role        string
	Name        string
	Contact     string
	Summary     string
	Experience  string
	Skills      string
	Education   string
}

// loadTemplates parses the embedded templates once. The files ship with the
// binary, so a parse failure is a programming error and panics.
func loadTemplates() map[string]*template.Template {
	templatesOnce.Do(func() {
		templates = make(map[string]*template.Template)
		for _, id := range []string{TemplateFull, TemplateSummary} {
			content, err := templateFiles.ReadFile("templates/" + id + ".tex")
			if err != nil {
				panic(fmt.Sprintf("embedded template %s missing: %v", id, err))
			}
			tmpl, err := template.New(id).Parse(string(content))
			if err != nil {
				panic(fmt.Sprintf("embedded template %s invalid: %v", id, err))
			}
			templates[id] = tmpl
		}
	})
	return templates
}

// TemplateIDs returns the known template identifiers in sorted order.
func TemplateIDs() []string {
	ids := make([]string, 0, len(loadTemplates()))
	for id := range loadTemplates() {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Render fills the named template with the structured fields and the
// RoleColor accent. Missing or empty fields never fail: each falls back to
// its documented default. The only error condition is an unknown template ID.
func Render(templateID string, role types.RoleColor, fields *types.StructuredFields) (string, error) {
	tmpl, ok := loadTemplates()[templateID]
	if !ok {
		return "", &TemplateError{
			Message: fmt.Sprintf("unknown template %q (known: %s)", templateID, strings.Join(TemplateIDs(), ", ")),
		}
	}

	if fields == nil {
		fields = &types.StructuredFields{}
	}

	data := slotData{
		AccentColor: AccentColor(role),
		AccentRGB:   AccentRGB(role),
		Role:        role.String(),
		Name:        orDefault(fields.Name, DefaultName),
		Contact:     orDefault(fields.Contact, DefaultContact),
		Summary:     orDefault(fields.Summary, DefaultSummary),
		Skills:      orDefault(fields.Skills, DefaultSkills),
		Education:   orDefault(fields.Education, DefaultEducation),
	}

	if strings.TrimSpace(fields.Experience) != "" {
		data.Experience = FormatContentBlock(fields.Experience)
	} else {
		data.Experience = DefaultExperience
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		// Templates take no functions and slotData has no methods, so
		// execution cannot fail on shipped templates.
		return "", &RenderError{Message: "failed to execute template", Cause: err}
	}

	return result.String(), nil
}

// orDefault substitutes fallback for empty or whitespace-only values.
func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
