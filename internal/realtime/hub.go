package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
// Send must not block: a client that cannot keep up drops the message.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Event is a content change pushed to connected admin dashboards.
type Event struct {
	Type     string    `json:"type"` // e.g. project_updated, cache_cleared
	Resource string    `json:"resource"`
	ID       string    `json:"id,omitempty"`
	UserID   string    `json:"userId,omitempty"`
	At       time.Time `json:"at"`
	Version  int       `json:"version"`
}

// Hub maintains active admin connections and broadcasts events to them.
type Hub struct {
	mu              sync.RWMutex
	userIdToClients map[string]map[Client]struct{}
	logger          *zap.Logger
}

// NewHub returns an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		userIdToClients: make(map[string]map[Client]struct{}),
		logger:          logger,
	}
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIdToClients[userID]; !ok {
		h.userIdToClients[userID] = make(map[Client]struct{})
	}
	h.userIdToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if user has no more clients, cleans up map.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIdToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIdToClients, userID)
		}
	}
}

// Connections returns the number of registered clients.
func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.userIdToClients {
		n += len(clients)
	}
	return n
}

// BroadcastAll sends a message to every connected client.
func (h *Hub) BroadcastAll(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, clients := range h.userIdToClients {
		for c := range clients {
			if !c.Send(message) {
				h.logger.Debug("dropped realtime message for slow client")
			}
		}
	}
}

// Publish encodes evt and sends it to every connected dashboard.
func (h *Hub) Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	if evt.Version == 0 {
		evt.Version = 1
	}
	bytes, err := json.Marshal(evt)
	if err != nil {
		h.logger.Warn("encode realtime event", zap.Error(err))
		return
	}
	h.BroadcastAll(bytes)
}
