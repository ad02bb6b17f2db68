package websocket

import (
	"log"
	"sync"
	"time"
)

// Event is the envelope pushed to connected clients. Payload carries the
// notification or session document that triggered the event.
type Event struct {
	Type      string      `json:"type"`
	UserID    string      `json:"user_id"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// Hub tracks the active connections for each user and fans events out to
// every open tab or device that user has.
type Hub struct {
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	events     chan Event

	mu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan Event),
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// PublishToUser delivers a payload to every open connection of the user.
// Users with no connection are skipped silently; the notification document
// is already persisted and will be seen on next load.
func (h *Hub) PublishToUser(userID string, payload interface{}) {
	h.events <- Event{
		Type:      "notification",
		UserID:    userID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.clients[client.UserID]; !ok {
				h.clients[client.UserID] = make(map[*Client]bool)
			}
			h.clients[client.UserID][client] = true
			log.Printf("[WebSocket] client registered: %s", client.UserID)
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.UserID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.UserID)
					}
					log.Printf("[WebSocket] client unregistered: %s", client.UserID)
				}
			}
			h.mu.Unlock()

		case event := <-h.events:
			h.mu.Lock()
			if conns, ok := h.clients[event.UserID]; ok {
				for client := range conns {
					select {
					case client.send <- event:
					default:
						close(client.send)
						delete(conns, client)
						if len(conns) == 0 {
							delete(h.clients, event.UserID)
						}
					}
				}
			}
			h.mu.Unlock()
		}
	}
}
