// Package lexicon provides the static weighted-term table that maps text
// signals to RoleColors. The default table is embedded at compile time and
// loaded exactly once; a Lexicon is read-only after construction and safe
// for concurrent use.
package lexicon

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/rolecolor-agent/internal/types"
)

//go:embed lexicon.json
var defaultTable []byte

// Term is a single matchable word or phrase with its signal weight.
// Multi-word terms keep internal spaces; hyphenated terms keep hyphens, so
// "cross-functional" and "cross functional" are distinct entries.
type Term struct {
	Text   string
	Weight float64
}

// Lexicon maps each RoleColor to its weighted term set. Terms are held in
// sorted order so every traversal is deterministic.
type Lexicon struct {
	terms map[types.RoleColor][]Term
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
	defaultErr  error
)

// Default returns the process-wide embedded lexicon. The table is parsed on
// first use and shared by all callers; it panics only if the embedded data
// is corrupt, which a unit test guards against.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		defaultLex, defaultErr = Load(bytes.NewReader(defaultTable))
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded lexicon is invalid: %v", defaultErr))
	}
	return defaultLex
}

// Load parses a lexicon table from JSON. The table must define a non-empty
// term set for every RoleColor; term text is normalized to lowercase and
// weights must be positive.
func Load(r io.Reader) (*Lexicon, error) {
	var raw map[string]map[string]float64
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon JSON: %w", err)
	}

	lex := &Lexicon{terms: make(map[types.RoleColor][]Term, len(types.AllRoleColors))}

	for label, entries := range raw {
		role, err := types.ParseRoleColor(label)
		if err != nil {
			return nil, fmt.Errorf("lexicon contains unknown role: %w", err)
		}

		terms := make([]Term, 0, len(entries))
		for text, weight := range entries {
			normalized := strings.ToLower(strings.TrimSpace(text))
			if normalized == "" {
				return nil, fmt.Errorf("lexicon role %s contains an empty term", role)
			}
			if weight <= 0 {
				return nil, fmt.Errorf("lexicon term %q has non-positive weight %v", text, weight)
			}
			terms = append(terms, Term{Text: normalized, Weight: weight})
		}
		sort.Slice(terms, func(i, j int) bool { return terms[i].Text < terms[j].Text })
		lex.terms[role] = terms
	}

	for _, role := range types.AllRoleColors {
		if len(lex.terms[role]) == 0 {
			return nil, fmt.Errorf("lexicon is missing terms for role %s", role)
		}
	}

	return lex, nil
}

// Terms returns the sorted term set for a role. The returned slice is shared
// and must not be modified.
func (l *Lexicon) Terms(role types.RoleColor) []Term {
	return l.terms[role]
}

// TermCount returns the number of distinct terms registered for a role.
func (l *Lexicon) TermCount(role types.RoleColor) int {
	return len(l.terms[role])
}

// Size returns the total number of terms across all roles.
func (l *Lexicon) Size() int {
	total := 0
	for _, terms := range l.terms {
		total += len(terms)
	}
	return total
}
