// Package scoring converts raw document text into a normalized RoleColor
// score distribution using the weighted lexicon. Scoring is a pure function
// of (text, lexicon): no I/O, no shared mutable state, deterministic output.
package scoring

import (
	"sort"

	"github.com/jonathan/rolecolor-agent/internal/lexicon"
	"github.com/jonathan/rolecolor-agent/internal/types"
)

// Diminishing-returns parameters for repeated term occurrences. The first
// occurrence earns full weight; each further occurrence adds 30% of the
// weight, up to five occurrences. Repetition beyond the cap still shows up
// in MatchRecord.Count but adds no further score.
const (
	repeatBonus   = 0.3
	occurrenceCap = 5
)

// Engine scores documents against a fixed lexicon. An Engine is immutable
// and safe for concurrent use.
type Engine struct {
	lex *lexicon.Lexicon
}

// NewEngine creates a scoring engine. A nil lexicon selects the embedded
// default table.
func NewEngine(lex *lexicon.Lexicon) *Engine {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Engine{lex: lex}
}

// Score analyzes text and returns the RoleColor score distribution. Every
// input produces a well-formed result: text with no lexicon matches yields
// an equal share per role and the first declared role as dominant.
func (e *Engine) Score(text string) *types.ScoreResult {
	normalized := NormalizeText(text)

	rawScores := make(map[types.RoleColor]float64, len(types.AllRoleColors))
	matches := make(map[types.RoleColor][]types.MatchRecord, len(types.AllRoleColors))
	totalMatched := 0

	for _, role := range types.AllRoleColors {
		score, records := e.scoreRole(normalized, role)
		rawScores[role] = score
		matches[role] = records
		totalMatched += len(records)
	}

	grandTotal := 0.0
	for _, score := range rawScores {
		grandTotal += score
	}

	normalizedScores := make(map[types.RoleColor]float64, len(types.AllRoleColors))
	if grandTotal == 0 {
		equal := 1.0 / float64(len(types.AllRoleColors))
		for _, role := range types.AllRoleColors {
			normalizedScores[role] = equal
		}
	} else {
		for role, score := range rawScores {
			normalizedScores[role] = score / grandTotal
		}
	}

	return &types.ScoreResult{
		RawScores:         rawScores,
		NormalizedScores:  normalizedScores,
		Matches:           matches,
		DominantRole:      dominantRole(normalizedScores),
		TotalMatchedTerms: totalMatched,
	}
}

// scoreRole computes the raw score and match records for one role. Records
// follow the lexicon's sorted term order, so output is deterministic.
func (e *Engine) scoreRole(normalized string, role types.RoleColor) (float64, []types.MatchRecord) {
	var records []types.MatchRecord
	total := 0.0

	for _, term := range e.lex.Terms(role) {
		count := countOccurrences(normalized, term.Text)
		if count == 0 {
			continue
		}
		records = append(records, types.MatchRecord{
			Term:   term.Text,
			Weight: term.Weight,
			Count:  count,
		})
		total += scaledContribution(term.Weight, count)
	}

	return total, records
}

// scaledContribution applies the diminishing-returns formula
// weight * (1 + 0.3*(min(count, 5) - 1)).
func scaledContribution(weight float64, count int) float64 {
	capped := min(count, occurrenceCap)
	return weight * (1 + repeatBonus*float64(capped-1))
}

// dominantRole picks the role with the strictly highest normalized score.
// Ties resolve to the first role in declaration order, which keeps repeated
// runs over identical input bit-identical.
func dominantRole(scores map[types.RoleColor]float64) types.RoleColor {
	best := types.AllRoleColors[0]
	bestScore := scores[best]
	for _, role := range types.AllRoleColors[1:] {
		if scores[role] > bestScore {
			best = role
			bestScore = scores[role]
		}
	}
	return best
}

// TopKeywords ranks matched terms for display by weight times the uncapped
// occurrence count. This intentionally differs from the capped scoring
// formula: display ranking rewards raw repetition, scoring does not.
func TopKeywords(result *types.ScoreResult, n int) []types.RankedKeyword {
	var ranked []types.RankedKeyword
	for _, role := range types.AllRoleColors {
		for _, record := range result.Matches[role] {
			ranked = append(ranked, types.RankedKeyword{
				Term:   record.Term,
				Role:   role,
				Weight: record.Weight,
				Count:  record.Count,
			})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		scoreI := ranked[i].Weight * float64(ranked[i].Count)
		scoreJ := ranked[j].Weight * float64(ranked[j].Count)
		if scoreI != scoreJ {
			return scoreI > scoreJ
		}
		return ranked[i].Term < ranked[j].Term
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
