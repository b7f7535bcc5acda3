package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Talha62370/Real-Time-Polling/internal/metrics"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // public push channel, any origin may listen
	},
}

// inboundMessage is the envelope for client-to-server events. The only
// recognized event is joinPoll.
type inboundMessage struct {
	Event  string `json:"event"`
	PollID int64  `json:"pollId"`
}

func (s *Server) handleWebSocket(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		metrics.WebSocketConnectionsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}

	sessionID := uuid.New()
	if err := s.hub.Register(sessionID, conn); err != nil {
		metrics.WebSocketConnectionsTotal.WithLabelValues("error").Inc()
		conn.Close()
		return nil
	}
	metrics.WebSocketConnectionsTotal.WithLabelValues("success").Inc()

	// Read pump, blocks until the connection closes. Unknown or malformed
	// events are ignored.
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Event == "joinPoll" && msg.PollID != 0 {
			s.hub.JoinRoom(sessionID, msg.PollID)
		}
	}

	s.hub.Unregister(sessionID)

	return nil
}
