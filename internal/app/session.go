package app

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"votingsystem/internal/domain"
)

const eventQueueSize = 100

// Subscriber receives ledger events, e.g. a monitor websocket client
type Subscriber interface {
	Send(message interface{}) error
	GetSubscriberID() string
	Close() error
}

// LedgerSession wraps a ledger with concurrency control and event fan-out.
// Every mutation, including the increment + insert of CastVote, happens
// under a single lock.
type LedgerSession struct {
	id        string
	ledger    *domain.Ledger
	mu        sync.RWMutex
	createdAt time.Time
	logger    *slog.Logger

	subscribers   map[string]Subscriber
	subscribersMu sync.RWMutex

	// Event channel for broadcasting
	events    chan *domain.LedgerEvent
	done      chan struct{}
	closeOnce sync.Once
}

// NewLedgerSession creates a session around an empty ledger
func NewLedgerSession(logger *slog.Logger) *LedgerSession {
	session := &LedgerSession{
		id:          uuid.New().String(),
		ledger:      domain.NewLedger(),
		createdAt:   time.Now(),
		logger:      ResolveLogger(logger),
		subscribers: make(map[string]Subscriber),
		events:      make(chan *domain.LedgerEvent, eventQueueSize),
		done:        make(chan struct{}),
	}

	// Start event broadcaster
	go session.eventLoop()

	session.logger.Info("ledger created", "ledgerID", session.id)

	return session
}

// ID returns the ledger's session identifier
func (s *LedgerSession) ID() string {
	return s.id
}

// CreatedAt returns when the session was started
func (s *LedgerSession) CreatedAt() time.Time {
	return s.createdAt
}

// RegisterCandidate adds a candidate to the ballot
func (s *LedgerSession) RegisterCandidate(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.RegisterCandidate(name); err != nil {
		s.logger.Info("candidate rejected", "ledgerID", s.id, "name", name, "reason", err)
		return err
	}

	names := s.ledger.ListCandidateNames()
	registered := names[len(names)-1]
	s.logger.Info("candidate registered", "ledgerID", s.id, "candidate", registered)

	s.queueEvent(domain.EventCandidateRegistered, &domain.CandidateRegisteredPayload{
		Name:       registered,
		Candidates: names,
	})

	return nil
}

// ListCandidateNames returns candidate names in registration order
func (s *LedgerSession) ListCandidateNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.ListCandidateNames()
}

// CastVote records a vote
func (s *LedgerSession) CastVote(voterID, voterName, candidateName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.CastVote(voterID, voterName, candidateName); err != nil {
		s.logger.Info("vote rejected", "ledgerID", s.id, "voterID", voterID, "reason", err)
		return err
	}

	s.logger.Info("vote cast", "ledgerID", s.id, "voterID", voterID)

	// A vote always follows a registered candidate, so results exist.
	results, _ := s.ledger.ComputeResults()
	s.queueEvent(domain.EventVoteCast, &domain.VoteCastPayload{
		VoterID:    voterID,
		TotalVotes: s.ledger.TotalVotes(),
		Results:    results,
	})

	return nil
}

// ComputeResults returns tallies, most votes first
func (s *LedgerSession) ComputeResults() ([]domain.Tally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.ComputeResults()
}

// ListVoters returns the voter roll in the order votes were accepted
func (s *LedgerSession) ListVoters() ([]domain.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.ListVoters()
}

// Snapshot returns a consistent view of the whole ledger
func (s *LedgerSession) Snapshot() *domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results, err := s.ledger.ComputeResults()
	if err != nil {
		results = []domain.Tally{}
	}

	return &domain.Snapshot{
		LedgerID:   s.id,
		Candidates: s.ledger.ListCandidateNames(),
		Results:    results,
		TotalVotes: s.ledger.TotalVotes(),
		VoterCount: s.ledger.VoterCount(),
	}
}

// Stats returns candidate and vote counts
func (s *LedgerSession) Stats() (candidates, votes int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.CandidateCount(), s.ledger.TotalVotes()
}

// RegisterSubscriber adds a receiver for ledger events
func (s *LedgerSession) RegisterSubscriber(sub Subscriber) {
	s.subscribersMu.Lock()
	defer s.subscribersMu.Unlock()
	s.subscribers[sub.GetSubscriberID()] = sub
}

// UnregisterSubscriber removes a receiver
func (s *LedgerSession) UnregisterSubscriber(subscriberID string) {
	s.subscribersMu.Lock()
	defer s.subscribersMu.Unlock()
	delete(s.subscribers, subscriberID)
}

// SubscriberCount returns the number of registered receivers
func (s *LedgerSession) SubscriberCount() int {
	s.subscribersMu.RLock()
	defer s.subscribersMu.RUnlock()
	return len(s.subscribers)
}

// queueEvent adds an event to the broadcast queue (caller holds mu)
func (s *LedgerSession) queueEvent(eventType domain.EventType, payload interface{}) {
	event := domain.NewEvent(uuid.New().String(), eventType, s.id, payload)
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and broadcasts to subscribers
func (s *LedgerSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to every subscriber
func (s *LedgerSession) broadcastEvent(event *domain.LedgerEvent) {
	s.subscribersMu.RLock()
	defer s.subscribersMu.RUnlock()

	for id, sub := range s.subscribers {
		if err := sub.Send(event); err != nil {
			s.logger.Debug("failed to send to subscriber", "subscriberID", id, "error", err)
		}
	}
}

// Close stops the event loop and disconnects all subscribers
func (s *LedgerSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		s.subscribersMu.Lock()
		for _, sub := range s.subscribers {
			sub.Close()
		}
		s.subscribers = make(map[string]Subscriber)
		s.subscribersMu.Unlock()

		s.logger.Info("ledger closed", "ledgerID", s.id)
	})
}
