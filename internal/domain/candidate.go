package domain

// Candidate is a named option on the ballot
type Candidate struct {
	Name      string `json:"name"`
	VoteCount int    `json:"voteCount"`
}

// NewCandidate creates a candidate with no votes
func NewCandidate(name string) *Candidate {
	return &Candidate{
		Name:      name,
		VoteCount: 0,
	}
}

func (c *Candidate) incrementVoteCount() {
	c.VoteCount++
}
