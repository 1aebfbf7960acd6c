package domain

import "time"

// EventType represents the type of ledger event
type EventType string

const (
	EventCandidateRegistered EventType = "CANDIDATE_REGISTERED"
	EventVoteCast            EventType = "VOTE_CAST"
)

// LedgerEvent represents an accepted change to a ledger
type LedgerEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	LedgerID  string      `json:"ledgerId"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new ledger event
func NewEvent(id string, eventType EventType, ledgerID string, payload interface{}) *LedgerEvent {
	return &LedgerEvent{
		ID:        id,
		Type:      eventType,
		LedgerID:  ledgerID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Payload types for different events

// CandidateRegisteredPayload is sent when a candidate joins the ballot
type CandidateRegisteredPayload struct {
	Name       string   `json:"name"`
	Candidates []string `json:"candidates"`
}

// VoteCastPayload is sent when a vote is accepted (without revealing the choice)
type VoteCastPayload struct {
	VoterID    string  `json:"voterId"`
	TotalVotes int     `json:"totalVotes"`
	Results    []Tally `json:"results"`
}

// Snapshot is the full read-only view of a ledger
type Snapshot struct {
	LedgerID   string   `json:"ledgerId"`
	Candidates []string `json:"candidates"`
	Results    []Tally  `json:"results"`
	TotalVotes int      `json:"totalVotes"`
	VoterCount int      `json:"voterCount"`
}
