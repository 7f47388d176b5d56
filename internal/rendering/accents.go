package rendering

import "github.com/jonathan/rolecolor-agent/internal/types"

// AccentColor returns the LaTeX color name defined in the full template for
// a RoleColor. The mapping is fixed per role and never derived from score
// magnitude. Unknown values fall back to the Builder accent.
func AccentColor(role types.RoleColor) string {
	switch role {
	case types.Builder:
		return "BuilderColor"
	case types.Enabler:
		return "EnablerColor"
	case types.Thriver:
		return "ThriverColor"
	case types.Supportee:
		return "SupporteeColor"
	default:
		return "BuilderColor"
	}
}

// AccentRGB returns the RGB triple for a RoleColor accent, used by the
// summary template which defines a single color inline.
func AccentRGB(role types.RoleColor) string {
	switch role {
	case types.Builder:
		return "59, 130, 246"
	case types.Enabler:
		return "34, 197, 94"
	case types.Thriver:
		return "249, 115, 22"
	case types.Supportee:
		return "139, 92, 246"
	default:
		return "59, 130, 246"
	}
}
