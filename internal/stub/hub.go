package stub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/models"
)

// Hub fans seat events out to every WebSocket subscriber of a flight.
type Hub struct {
	clients    map[string]map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan models.SeatEvent
	mu         sync.RWMutex
}

// NewHub creates a hub. Run must be started before broadcasting.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan models.SeatEvent, 256),
	}
}

// Run drives the hub's registration and broadcast loop.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.flightID] == nil {
				h.clients[c.flightID] = make(map[*client]bool)
			}
			h.clients[c.flightID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[c.flightID]; ok {
				if _, ok := clients[c]; ok {
					delete(clients, c)
					close(c.send)
					if len(clients) == 0 {
						delete(h.clients, c.flightID)
					}
				}
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("stub: failed to marshal event: %v", err)
				continue
			}

			h.mu.RLock()
			clients := h.clients[ev.FlightID]
			h.mu.RUnlock()

			for c := range clients {
				select {
				case c.send <- data:
				default:
					h.mu.Lock()
					delete(h.clients[ev.FlightID], c)
					close(c.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// Broadcast queues seat events for delivery to the flight's subscribers.
func (h *Hub) Broadcast(events ...models.SeatEvent) {
	for _, ev := range events {
		h.broadcast <- ev
	}
}

// client is one WebSocket subscription.
type client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	flightID string
}

func (c *client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	// Subscribers never send; the read loop only detects disconnects.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
