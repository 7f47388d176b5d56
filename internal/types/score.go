package types

// MatchRecord records one lexicon term found in the analyzed text.
type MatchRecord struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
	// Count is the raw number of occurrences. Scoring caps the scaled
	// contribution at 5 occurrences, but Count always reports the real total.
	Count int `json:"count"`
}

// ScoreResult holds the outcome of scoring a document against the lexicon.
// It is constructed once per Score call and never mutated afterwards.
type ScoreResult struct {
	RawScores         map[RoleColor]float64       `json:"raw_scores"`
	NormalizedScores  map[RoleColor]float64       `json:"normalized_scores"`
	Matches           map[RoleColor][]MatchRecord `json:"matches"`
	DominantRole      RoleColor                   `json:"dominant_role"`
	TotalMatchedTerms int                         `json:"total_matched_terms"`
}

// RankedKeyword is a keyword ranked for display, scored by weight times the
// uncapped occurrence count.
type RankedKeyword struct {
	Term   string    `json:"term"`
	Role   RoleColor `json:"role"`
	Weight float64   `json:"weight"`
	Count  int       `json:"count"`
}
