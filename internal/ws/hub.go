package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// client serializes writes to one connection. gorilla/websocket allows at
// most one concurrent writer per connection.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub fans progress updates out to the clients watching one attempt.
// A single user may have several tabs open; each gets the same stream.
type Hub struct {
	mu       sync.RWMutex
	attempts map[uint]map[*websocket.Conn]*client
}

func NewHub() *Hub {
	return &Hub{
		attempts: make(map[uint]map[*websocket.Conn]*client),
	}
}

func (h *Hub) AddConnection(attemptID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.attempts[attemptID] == nil {
		h.attempts[attemptID] = make(map[*websocket.Conn]*client)
	}
	h.attempts[attemptID][conn] = &client{conn: conn}
	log.Printf("ws: client connected to attempt %d (total: %d)", attemptID, len(h.attempts[attemptID]))
}

func (h *Hub) RemoveConnection(attemptID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.attempts[attemptID]; ok {
		if _, present := conns[conn]; !present {
			return
		}
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.attempts, attemptID)
		}
		log.Printf("ws: client disconnected from attempt %d", attemptID)
	}
}

// Broadcast sends the message to every client watching the attempt.
// Writes happen outside the hub lock, one at a time per connection;
// connections that fail are dropped afterwards under the write lock.
func (h *Hub) Broadcast(attemptID uint, message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.attempts[attemptID]))
	for _, cl := range h.attempts[attemptID] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	var dead []*websocket.Conn
	for _, cl := range clients {
		if err := cl.write(data); err != nil {
			log.Printf("ws: write error: %v", err)
			dead = append(dead, cl.conn)
		}
	}
	for _, conn := range dead {
		h.RemoveConnection(attemptID, conn)
	}
}
