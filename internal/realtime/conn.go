package realtime

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
)

// Serve runs the read and write pumps for an upgraded connection. initial,
// when non-nil, is written before any hub traffic so a new client starts
// from the current read-model. Serve returns when the connection closes.
func Serve(h *Hub, conn *websocket.Conn, c *Client, initial []byte, log *slog.Logger) {
	if !h.Register(c) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return
	}

	replies := make(chan []byte, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		writePump(conn, c, initial, replies)
	}()

	readPump(conn, replies, log)
	h.Unregister(c)
	<-done
}

// writePump pumps messages from the hub to the websocket connection.
func writePump(conn *websocket.Conn, c *Client, initial []byte, replies <-chan []byte) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	if initial != nil {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, initial); err != nil {
			return
		}
	}

	for {
		select {
		case message, ok := <-c.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case reply := <-replies:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, reply); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads client commands until the connection fails. Only ping is
// understood; anything else is answered with an error message.
func readPump(conn *websocket.Conn, replies chan<- []byte, log *slog.Logger) {
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn("websocket read error", "error", err)
			}
			return
		}

		reply, err := handleClientMessage(raw).JSON()
		if err != nil {
			continue
		}
		select {
		case replies <- reply:
		default:
		}
	}
}

// handleClientMessage answers a single client frame.
func handleClientMessage(raw []byte) Message {
	var in struct {
		Type MessageType `json:"type"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return NewMessage(TypeError, map[string]string{"code": "bad_message", "message": "message must be JSON"})
	}
	if in.Type == TypePing {
		return NewMessage(TypePong, nil)
	}
	return NewMessage(TypeError, map[string]string{
		"code":          "unknown_type",
		"message":       "unsupported message type",
		"original_type": string(in.Type),
	})
}
