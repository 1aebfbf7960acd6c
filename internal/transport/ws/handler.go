package ws

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"votingsystem/internal/app"
)

// Handler handles WebSocket connections for the results feed
type Handler struct {
	session  *app.LedgerSession
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(session *app.LedgerSession, logger *slog.Logger) *Handler {
	return &Handler{
		session: session,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The feed only ever reads the ledger
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: app.ResolveLogger(logger),
	}
}

// ServeHTTP handles WebSocket upgrade requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(conn, h.session, uuid.New().String(), h.logger)

	// Snapshot goes out before any event so the feed starts from a known state
	client.sendConnected()
	h.session.RegisterSubscriber(client)

	h.logger.Info("websocket connected",
		"ledgerID", h.session.ID(),
		"subscriberID", client.GetSubscriberID(),
	)

	client.Run()
}
