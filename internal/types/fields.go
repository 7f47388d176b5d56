package types

// StructuredFields holds the named content slots consumed by the renderer.
// Every field is optional; the renderer substitutes a documented default for
// any empty field. Values come from an untrusted, best-effort extractor and
// are never invented by the renderer itself.
type StructuredFields struct {
	Name       string `json:"name,omitempty"`
	Contact    string `json:"contact,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Experience string `json:"experience,omitempty"`
	Skills     string `json:"skills,omitempty"`
	Education  string `json:"education,omitempty"`
}

// IsEmpty reports whether no field carries content.
func (f *StructuredFields) IsEmpty() bool {
	return f.Name == "" && f.Contact == "" && f.Summary == "" &&
		f.Experience == "" && f.Skills == "" && f.Education == ""
}
