package domain

import (
	"regexp"
	"strings"
)

// voterIDPattern is a literal V followed by one or more ASCII digits, nothing else.
var voterIDPattern = regexp.MustCompile(`^V[0-9]+$`)

// Voter is the identity recorded when a vote is accepted
type Voter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewVoter creates a voter with a trimmed name. The ID is kept verbatim.
func NewVoter(id, name string) Voter {
	return Voter{
		ID:   id,
		Name: strings.TrimSpace(name),
	}
}

// Key returns the identity used for set membership. Two voters with the
// same ID are the same voter whatever their names.
func (v Voter) Key() string {
	return v.ID
}

// ValidateVoterID checks the voter ID format without trimming it
func ValidateVoterID(id string) error {
	if !voterIDPattern.MatchString(id) {
		return ErrInvalidVoterIDFormat
	}
	return nil
}
