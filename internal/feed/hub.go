package feed

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// EventType is the kind of change a table row underwent.
type EventType string

const (
	EventInsert EventType = "insert"
	EventUpdate EventType = "update"
	EventDelete EventType = "delete"
)

// Event is a single change-feed notification for one table row.
type Event struct {
	Table     string    `json:"table"`
	Type      EventType `json:"type"`
	Row       any       `json:"row"`
	Timestamp time.Time `json:"timestamp"`
}

// Client represents a connected SSE admin client.
type Client struct {
	ID     string
	Events chan []byte

	// tables is the subscription filter; empty means all tables.
	tables map[string]bool
}

// Wants reports whether the client subscribed to the given table.
func (c *Client) Wants(table string) bool {
	if len(c.tables) == 0 {
		return true
	}
	return c.tables[table]
}

// Hub fans change events out to SSE clients and in-process subscribers.
// Delivery to clients is non-blocking: a full buffer drops the event.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	subs    []func(Event)
}

// NewHub creates a new change-feed hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a new client and returns it for streaming. The optional
// table list filters which events the client receives.
func (h *Hub) Register(clientID string, tables ...string) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &Client{
		ID:     clientID,
		Events: make(chan []byte, 64),
		tables: make(map[string]bool, len(tables)),
	}
	for _, t := range tables {
		c.tables[t] = true
	}
	h.clients[clientID] = c
	log.Info().Str("client_id", clientID).Int("total_clients", len(h.clients)).Msg("Feed client connected")
	return c
}

// Unregister removes a client and closes its channel.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[clientID]; ok {
		close(c.Events)
		delete(h.clients, clientID)
		log.Info().Str("client_id", clientID).Int("total_clients", len(h.clients)).Msg("Feed client disconnected")
	}
}

// Subscribe adds an in-process handler invoked for every published event.
// Handlers must be idempotent with respect to row ids: the same row may
// reach them through both the optimistic path and the feed path.
func (h *Hub) Subscribe(fn func(Event)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = append(h.subs, fn)
}

// Publish broadcasts an event to matching clients and all subscribers.
func (h *Hub) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("table", event.Table).Msg("Failed to marshal feed event")
		return
	}

	h.mu.RLock()
	subs := make([]func(Event), len(h.subs))
	copy(subs, h.subs)
	for _, c := range h.clients {
		if !c.Wants(event.Table) {
			continue
		}
		select {
		case c.Events <- data:
		default:
			log.Warn().Str("client_id", c.ID).Msg("Feed client buffer full, dropping event")
		}
	}
	h.mu.RUnlock()

	for _, fn := range subs {
		fn(event)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
