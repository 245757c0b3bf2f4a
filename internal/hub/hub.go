package hub

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Event types published on a user's stream.
const (
	EventDirectMessage = "direct_message"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client represents a single open stream of one user.
// It's essentially a channel that the SSE handler will listen to.
type Client chan []byte

// Hub fans events out to every open stream of a user.
type Hub struct {
	users map[uint]map[Client]bool
	mu    sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		users: make(map[uint]map[Client]bool),
	}
}

// Subscribe registers a new client for userID. buffer sizes the client channel.
func (h *Hub) Subscribe(userID uint, buffer int) Client {
	client := make(Client, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.users[userID]; !ok {
		h.users[userID] = make(map[Client]bool)
	}
	h.users[userID][client] = true
	return client
}

// Unsubscribe removes a client and closes its channel.
func (h *Hub) Unsubscribe(userID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.users[userID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.users, userID)
			}
		}
	}
}

// Publish sends an event to all clients of userID. Slow clients drop events
// instead of blocking the sender.
func (h *Hub) Publish(userID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.users[userID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		slog.Error("hub: marshal event", "type", event.Type, "error", err)
		return
	}

	for client := range clients {
		select {
		case client <- messageBytes:
		default:
			slog.Warn("hub: dropping event for slow client", "user_id", userID, "type", event.Type)
		}
	}
}

// Subscribers returns how many open streams userID has.
func (h *Hub) Subscribers(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}
