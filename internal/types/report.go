package types

// ValidationReport aggregates every structural issue found in a rendered
// document. Valid is true iff Errors is empty; warnings never affect Valid.
type ValidationReport struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
