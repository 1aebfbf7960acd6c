package ws

import (
	"time"

	"votingsystem/internal/domain"
)

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgPing MessageType = "ping"
)

// Server → Client message types
const (
	MsgConnected           MessageType = "connected"
	MsgError               MessageType = "error"
	MsgCandidateRegistered MessageType = "candidate_registered"
	MsgVoteCast            MessageType = "vote_cast"
	MsgPong                MessageType = "pong"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// messageFromEvent maps a ledger event onto the wire format
func messageFromEvent(event *domain.LedgerEvent) *ServerMessage {
	var msgType MessageType
	switch event.Type {
	case domain.EventCandidateRegistered:
		msgType = MsgCandidateRegistered
	case domain.EventVoteCast:
		msgType = MsgVoteCast
	default:
		msgType = MessageType(event.Type)
	}

	return &ServerMessage{
		Type:      msgType,
		Payload:   event.Payload,
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
	}
}

// Server message payloads

// ConnectedPayload is the payload for connected message
type ConnectedPayload struct {
	SubscriberID string           `json:"subscriberId"`
	Snapshot     *domain.Snapshot `json:"snapshot"`
}

// ErrorPayload is the payload for error message
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage = "INVALID_MESSAGE"
	ErrCodeReadOnly       = "READ_ONLY"
)
