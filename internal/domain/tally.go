package domain

import "github.com/shopspring/decimal"

// Tally is one candidate's line in the results
type Tally struct {
	Name       string  `json:"name"`
	VoteCount  int     `json:"voteCount"`
	Percentage float64 `json:"percentage"`
}

// NewTally computes the candidate's share of totalVotes. A zero total
// yields 0 rather than NaN.
func NewTally(name string, voteCount, totalVotes int) Tally {
	percentage := 0.0
	if totalVotes > 0 {
		percentage = float64(voteCount) * 100.0 / float64(totalVotes)
	}
	return Tally{
		Name:       name,
		VoteCount:  voteCount,
		Percentage: percentage,
	}
}

// PercentageString renders the share with exactly two decimals, e.g. "33.33"
func (t Tally) PercentageString() string {
	return decimal.NewFromFloat(t.Percentage).StringFixed(2)
}
