package server

import (
	"sync"

	"github.com/gorilla/websocket"
)

// hub tracks connected reload clients. gorilla/websocket allows only one
// concurrent writer per conn, so all writes go through Broadcast, which
// holds the lock for the whole fanout.
type hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newHub() *hub {
	return &hub{clients: make(map[*websocket.Conn]bool)}
}

// Add registers a client and returns the connection count.
func (h *hub) Add(c *websocket.Conn) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
	return len(h.clients)
}

// Remove unregisters a client and returns the connection count.
func (h *hub) Remove(c *websocket.Conn) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c)
	return len(h.clients)
}

// Count returns the number of connected clients.
func (h *hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends message to every client. Clients whose write fails are
// dropped; their read loop will observe the closed conn and clean up.
func (h *hub) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if err := c.WriteMessage(websocket.TextMessage, message); err != nil {
			c.Close()
			delete(h.clients, c)
		}
	}
}

// CloseAll closes every client connection.
func (h *hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.Close()
		delete(h.clients, c)
	}
}
