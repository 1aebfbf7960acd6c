package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrInvalidName          = errors.New("invalid candidate name")
	ErrDuplicateCandidate   = errors.New("candidate already registered")
	ErrInvalidVoterIDFormat = errors.New("invalid voter ID format")
	ErrDuplicateVote        = errors.New("voter ID has already voted")
	ErrUnknownCandidate     = errors.New("unknown candidate")
	ErrEmptyState           = errors.New("nothing to report")
)

// Empty-state reports. Both match ErrEmptyState with errors.Is.
var (
	ErrNoCandidates = fmt.Errorf("no candidates registered: %w", ErrEmptyState)
	ErrNoVotes      = fmt.Errorf("no votes cast yet: %w", ErrEmptyState)
)
