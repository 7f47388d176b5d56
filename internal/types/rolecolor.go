// Package types provides type definitions for structured data used throughout the rolecolor-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// RoleColor identifies one of the four team contribution archetypes.
type RoleColor string

// The four RoleColors. Declaration order is significant: it is the
// deterministic tie-break order used when two roles score equally.
const (
	Builder   RoleColor = "Builder"
	Enabler   RoleColor = "Enabler"
	Thriver   RoleColor = "Thriver"
	Supportee RoleColor = "Supportee"
)

// AllRoleColors lists every RoleColor in declaration order.
var AllRoleColors = []RoleColor{Builder, Enabler, Thriver, Supportee}

// String returns the RoleColor label.
func (r RoleColor) String() string {
	return string(r)
}

// Valid reports whether r is one of the four known RoleColors.
func (r RoleColor) Valid() bool {
	switch r {
	case Builder, Enabler, Thriver, Supportee:
		return true
	}
	return false
}

// ParseRoleColor converts a label into a RoleColor.
func ParseRoleColor(s string) (RoleColor, error) {
	r := RoleColor(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown RoleColor %q: must be one of %v", s, AllRoleColors)
	}
	return r, nil
}

// roleDescriptions holds the one-paragraph description shown for each RoleColor.
var roleDescriptions = map[RoleColor]string{
	Builder:   "Builders drive innovation, vision, and strategy. They create new systems, architect solutions, and think long-term about growth and scalability.",
	Enabler:   "Enablers connect people, execute plans, and bridge gaps. They facilitate collaboration, mentor others, and ensure smooth communication across teams.",
	Thriver:   "Thrivers perform under pressure and adapt quickly. They thrive in fast-paced environments, take ownership, and deliver results against tight deadlines.",
	Supportee: "Supportees ensure reliability, consistency, and stability. They maintain systems, document processes, and provide the dependable foundation teams need.",
}

// Description returns the human-readable description for the RoleColor.
// Unknown values return an empty string.
func (r RoleColor) Description() string {
	return roleDescriptions[r]
}
