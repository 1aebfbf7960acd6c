package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votingsystem/internal/app"
)

type wireMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func newFeed(t *testing.T) (*app.LedgerSession, *websocket.Conn) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := app.NewLedgerSession(logger)
	srv := httptest.NewServer(NewHandler(session, logger))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		session.Close()
		srv.Close()
	})
	return session, conn
}

func readMessage(t *testing.T, conn *websocket.Conn) wireMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg wireMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestFeedSendsSnapshotOnConnect(t *testing.T) {
	_, conn := newFeed(t)

	msg := readMessage(t, conn)
	require.Equal(t, MsgConnected, msg.Type)

	var payload struct {
		SubscriberID string `json:"subscriberId"`
		Snapshot     struct {
			Candidates []string `json:"candidates"`
			TotalVotes int      `json:"totalVotes"`
		} `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.NotEmpty(t, payload.SubscriberID)
	assert.Empty(t, payload.Snapshot.Candidates)
	assert.Equal(t, 0, payload.Snapshot.TotalVotes)
}

func TestFeedStreamsLedgerEvents(t *testing.T) {
	session, conn := newFeed(t)
	readMessage(t, conn)

	require.Eventually(t, func() bool {
		return session.SubscriberCount() == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, session.RegisterCandidate("Alice"))
	msg := readMessage(t, conn)
	assert.Equal(t, MsgCandidateRegistered, msg.Type)
	assert.Contains(t, string(msg.Payload), `"name":"Alice"`)

	require.NoError(t, session.CastVote("V1", "Ann", "Alice"))
	msg = readMessage(t, conn)
	assert.Equal(t, MsgVoteCast, msg.Type)

	var payload struct {
		VoterID    string `json:"voterId"`
		TotalVotes int    `json:"totalVotes"`
	}
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "V1", payload.VoterID)
	assert.Equal(t, 1, payload.TotalVotes)
}

func TestFeedAnswersPing(t *testing.T) {
	_, conn := newFeed(t)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgPing}))
	assert.Equal(t, MsgPong, readMessage(t, conn).Type)
}

func TestFeedRejectsWrites(t *testing.T) {
	session, conn := newFeed(t)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":    "cast_vote",
		"payload": map[string]string{"voterId": "V1", "candidate": "Alice"},
	}))

	msg := readMessage(t, conn)
	require.Equal(t, MsgError, msg.Type)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, ErrCodeReadOnly, payload.Code)

	_, votes := session.Stats()
	assert.Equal(t, 0, votes)
}

func TestFeedRejectsMalformedMessages(t *testing.T) {
	_, conn := newFeed(t)
	readMessage(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	msg := readMessage(t, conn)
	require.Equal(t, MsgError, msg.Type)
	var payload ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, ErrCodeInvalidMessage, payload.Code)
}

func TestFeedUnregistersOnDisconnect(t *testing.T) {
	session, conn := newFeed(t)
	readMessage(t, conn)

	require.Eventually(t, func() bool {
		return session.SubscriberCount() == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	assert.Eventually(t, func() bool {
		return session.SubscriberCount() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
