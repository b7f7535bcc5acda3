package websocket

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/Talha62370/Real-Time-Polling/internal/metrics"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

const writeTimeout = 5 * time.Second

// Message is the envelope for every server-to-client event.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	sessionID uuid.UUID
	conn      *websocket.Conn
	errCh     chan error
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	sessionID uuid.UUID
}

func (cmdUnregister) hubCmd() {}

type cmdJoinRoom struct {
	sessionID uuid.UUID
	pollID    int64
}

func (cmdJoinRoom) hubCmd() {}

type cmdPublish struct {
	data []byte
}

func (cmdPublish) hubCmd() {}

type cmdSessionCount struct {
	replyCh chan int
}

func (cmdSessionCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

// --- Per-connection writer ---

type clientWriter struct {
	conn   *websocket.Conn
	clock  clockwork.Clock
	sendCh chan []byte
	done   chan struct{}
}

func newClientWriter(conn *websocket.Conn, clock clockwork.Clock) *clientWriter {
	cw := &clientWriter{
		conn:   conn,
		clock:  clock,
		sendCh: make(chan []byte, 16),
		done:   make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg, ok := <-cw.sendCh:
			if !ok {
				return
			}
			cw.conn.SetWriteDeadline(cw.clock.Now().Add(writeTimeout))
			if err := cw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-cw.done:
			return
		}
	}
}

func (cw *clientWriter) stop() {
	close(cw.done)
	cw.conn.Close()
}

// --- Hub ---

// Hub is the broadcast channel: it owns the set of connected subscriber
// sessions and fans published events out to all of them. All state is
// confined to the run goroutine; the public API communicates over cmdCh.
//
// Sessions may join per-poll rooms, but publishes are global: room
// membership is tracked and never consulted on the publish path, matching
// the observable behavior clients rely on.
type Hub struct {
	cmdCh    chan hubCmd
	clock    clockwork.Clock
	sessions map[uuid.UUID]*clientWriter
	rooms    map[int64]map[uuid.UUID]struct{}
}

func NewHub(clock clockwork.Clock) *Hub {
	h := &Hub{
		cmdCh:    make(chan hubCmd, 256),
		clock:    clock,
		sessions: make(map[uuid.UUID]*clientWriter),
		rooms:    make(map[int64]map[uuid.UUID]struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.sessionID)
		case cmdJoinRoom:
			h.handleJoinRoom(c)
		case cmdPublish:
			h.handlePublish(c)
		case cmdSessionCount:
			c.replyCh <- len(h.sessions)
		case cmdStop:
			h.handleStop()
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) {
	h.sessions[c.sessionID] = newClientWriter(c.conn, h.clock)
	metrics.WebSocketConnectionsCurrent.Inc()
	slog.Info("Client connected", "session_id", c.sessionID, "total_sessions", len(h.sessions))
	c.errCh <- nil
}

func (h *Hub) handleUnregister(sessionID uuid.UUID) {
	cw, exists := h.sessions[sessionID]
	if !exists {
		return
	}

	cw.stop()
	delete(h.sessions, sessionID)
	metrics.WebSocketConnectionsCurrent.Dec()

	for pollID, members := range h.rooms {
		delete(members, sessionID)
		if len(members) == 0 {
			delete(h.rooms, pollID)
		}
	}

	slog.Info("Client disconnected", "session_id", sessionID, "total_sessions", len(h.sessions))
}

func (h *Hub) handleJoinRoom(c cmdJoinRoom) {
	if _, exists := h.sessions[c.sessionID]; !exists {
		return
	}
	members, exists := h.rooms[c.pollID]
	if !exists {
		members = make(map[uuid.UUID]struct{})
		h.rooms[c.pollID] = members
	}
	members[c.sessionID] = struct{}{}
	slog.Info("Session joined poll room", "session_id", c.sessionID, "poll_id", c.pollID)
}

func (h *Hub) handlePublish(c cmdPublish) {
	var slow []uuid.UUID
	for sessionID, cw := range h.sessions {
		select {
		case cw.sendCh <- c.data:
			metrics.BroadcastDeliveries.Inc()
		default:
			// client is slow, mark for removal
			slow = append(slow, sessionID)
		}
	}

	for _, sessionID := range slow {
		slog.Warn("Disconnecting slow client", "session_id", sessionID)
		metrics.BroadcastSlowClientsEvicted.Inc()
		h.handleUnregister(sessionID)
	}
}

func (h *Hub) handleStop() {
	for sessionID, cw := range h.sessions {
		cw.stop()
		delete(h.sessions, sessionID)
		metrics.WebSocketConnectionsCurrent.Dec()
	}
	h.rooms = make(map[int64]map[uuid.UUID]struct{})
}

// --- Public API ---

// Register adds a subscriber session.
func (h *Hub) Register(sessionID uuid.UUID, conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- cmdRegister{sessionID: sessionID, conn: conn, errCh: errCh}
	return <-errCh
}

// Unregister removes a session; no further events are delivered to it.
func (h *Hub) Unregister(sessionID uuid.UUID) {
	h.cmdCh <- cmdUnregister{sessionID: sessionID}
}

// JoinRoom adds a session to the named poll room.
func (h *Hub) JoinRoom(sessionID uuid.UUID, pollID int64) {
	h.cmdCh <- cmdJoinRoom{sessionID: sessionID, pollID: pollID}
}

// Publish delivers the event to every connected session. Delivery is
// fire-and-forget: there is no acknowledgment and no replay for sessions
// that connect later.
func (h *Hub) Publish(event string, payload any) {
	data, err := json.Marshal(Message{Event: event, Data: payload})
	if err != nil {
		slog.Error("Failed to marshal broadcast message", "event", event, "error", err)
		return
	}
	h.cmdCh <- cmdPublish{data: data}
}

// SessionCount returns the number of connected sessions.
func (h *Hub) SessionCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- cmdSessionCount{replyCh: replyCh}
	return <-replyCh
}

// Stop shuts down the hub, closing all client connections.
func (h *Hub) Stop() {
	h.cmdCh <- cmdStop{}
}
