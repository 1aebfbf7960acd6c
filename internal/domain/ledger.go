package domain

import (
	"sort"
	"strings"
)

// Ledger is the in-memory register of candidates and of the voters who
// have voted. It is not safe for concurrent use; see app.LedgerSession.
type Ledger struct {
	candidates []*Candidate
	byName     map[string]*Candidate

	voters []Voter
	voted  map[string]struct{}
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		candidates: make([]*Candidate, 0),
		byName:     make(map[string]*Candidate),
		voters:     make([]Voter, 0),
		voted:      make(map[string]struct{}),
	}
}

// RegisterCandidate adds a candidate at the end of the ballot
func (l *Ledger) RegisterCandidate(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrInvalidName
	}

	if _, ok := l.byName[name]; ok {
		return ErrDuplicateCandidate
	}

	candidate := NewCandidate(name)
	l.candidates = append(l.candidates, candidate)
	l.byName[name] = candidate

	return nil
}

// ListCandidateNames returns candidate names in registration order
func (l *Ledger) ListCandidateNames() []string {
	names := make([]string, 0, len(l.candidates))
	for _, c := range l.candidates {
		names = append(names, c.Name)
	}
	return names
}

// CastVote admits one vote for candidateName from voterID.
//
// Checks run in a fixed order: ID format, then whether the ID has already
// voted, then whether the candidate exists. Nothing is mutated unless every
// check passes.
func (l *Ledger) CastVote(voterID, voterName, candidateName string) error {
	if err := ValidateVoterID(voterID); err != nil {
		return err
	}

	voter := NewVoter(voterID, voterName)
	if l.HasVoted(voter.Key()) {
		return ErrDuplicateVote
	}

	candidate, ok := l.byName[strings.TrimSpace(candidateName)]
	if !ok {
		return ErrUnknownCandidate
	}

	candidate.incrementVoteCount()
	l.voters = append(l.voters, voter)
	l.voted[voter.Key()] = struct{}{}

	return nil
}

// HasVoted reports whether the voter ID is already on the roll
func (l *Ledger) HasVoted(voterID string) bool {
	_, ok := l.voted[voterID]
	return ok
}

// ComputeResults returns one tally per candidate, most votes first. Ties keep
// registration order.
func (l *Ledger) ComputeResults() ([]Tally, error) {
	if len(l.candidates) == 0 {
		return nil, ErrNoCandidates
	}

	total := l.TotalVotes()
	results := make([]Tally, 0, len(l.candidates))
	for _, c := range l.candidates {
		results = append(results, NewTally(c.Name, c.VoteCount, total))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].VoteCount > results[j].VoteCount
	})

	return results, nil
}

// ListVoters returns everyone who has voted, in the order their votes were
// accepted
func (l *Ledger) ListVoters() ([]Voter, error) {
	if len(l.voters) == 0 {
		return nil, ErrNoVotes
	}

	voters := make([]Voter, len(l.voters))
	copy(voters, l.voters)
	return voters, nil
}

// TotalVotes returns the sum of all candidates' vote counts
func (l *Ledger) TotalVotes() int {
	total := 0
	for _, c := range l.candidates {
		total += c.VoteCount
	}
	return total
}

// CandidateCount returns the number of registered candidates
func (l *Ledger) CandidateCount() int {
	return len(l.candidates)
}

// VoterCount returns the number of voters on the roll
func (l *Ledger) VoterCount() int {
	return len(l.voters)
}
