// Package realtime pushes recomputed journal read-models to connected
// websocket clients. Clients are grouped by user; a publish only reaches the
// connections of the user it belongs to.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// MessageType identifies the type of websocket message.
type MessageType string

const (
	// Server -> client.
	TypeJournalUpdated MessageType = "journal.updated"
	TypePong           MessageType = "pong"
	TypeError          MessageType = "error"

	// Client -> server.
	TypePing MessageType = "ping"
)

// Message is the envelope of every websocket frame.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload,omitempty"`
}

// NewMessage creates a message stamped with the current UTC time.
func NewMessage(t MessageType, payload any) Message {
	return Message{Type: t, Timestamp: time.Now().UTC(), Payload: payload}
}

// JSON serializes the message.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

type delivery struct {
	userID uuid.UUID
	data   []byte
}

// Hub maintains the set of active clients per user and fans messages out to them.
type Hub struct {
	log *slog.Logger

	clients    map[uuid.UUID]map[*Client]struct{}
	publish    chan delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex
}

// NewHub creates a hub. Call Run before registering clients.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:        log,
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		publish:    make(chan delivery, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop. It returns when ctx is cancelled, closing
// every client's send channel.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for userID, set := range h.clients {
				for c := range set {
					close(c.send)
				}
				delete(h.clients, userID)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[c.userID] = set
			}
			set[c] = struct{}{}
			n := len(set)
			h.mu.Unlock()
			h.log.Info("websocket client connected", "user_id", c.userID, "user_clients", n)

		case c := <-h.unregister:
			h.mu.Lock()
			h.remove(c)
			h.mu.Unlock()
			h.log.Info("websocket client disconnected", "user_id", c.userID)

		case d := <-h.publish:
			h.mu.Lock()
			for c := range h.clients[d.userID] {
				select {
				case c.send <- d.data:
				default:
					// Send buffer full: drop the slow client.
					h.remove(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove deletes c and closes its send channel. Callers hold mu.
func (h *Hub) remove(c *Client) {
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
}

// Publish sends rm to every client of userID as a journal.updated message.
// It never blocks: when the hub is saturated the update is dropped, and the
// next recompute carries the full state anyway.
func (h *Hub) Publish(userID uuid.UUID, rm domain.ReadModel) {
	data, err := NewMessage(TypeJournalUpdated, rm).JSON()
	if err != nil {
		h.log.Error("encode journal update", "user_id", userID, "error", err)
		return
	}
	select {
	case h.publish <- delivery{userID: userID, data: data}:
	default:
		h.log.Warn("publish channel full, dropping journal update", "user_id", userID)
	}
}

// Register adds a client to the hub. It reports false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients of userID.
func (h *Hub) ClientCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Client is one websocket connection of a user.
type Client struct {
	userID uuid.UUID
	send   chan []byte
}

// NewClient creates a client for userID.
func NewClient(userID uuid.UUID) *Client {
	return &Client{userID: userID, send: make(chan []byte, 16)}
}

// Send returns the channel the hub writes outgoing frames to. It is closed
// when the hub drops the client.
func (c *Client) Send() <-chan []byte {
	return c.send
}
