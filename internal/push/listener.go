// Package push consumes the per-flight seat event channel over WebSocket.
package push

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/gorilla/websocket"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/models"
)

// Listener holds one WebSocket subscription to a flight's seat events.
// Events are delivered on the channel returned by Events; the channel is
// closed when the connection drops or Close is called.
type Listener struct {
	flightID string
	conn     *websocket.Conn
	events   chan models.SeatEvent
	done     chan struct{}
}

// Dial connects to the push channel for one flight. The URL is derived
// from the WebSocket base URL, e.g. "ws://localhost:8080/api".
func Dial(ctx context.Context, baseURL, flightID string) (*Listener, error) {
	url := fmt.Sprintf("%s/seats/flight/%s/ws", baseURL, flightID)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to push channel: %w", err)
	}

	l := &Listener{
		flightID: flightID,
		conn:     conn,
		events:   make(chan models.SeatEvent, 64),
		done:     make(chan struct{}),
	}
	go l.readLoop()
	return l, nil
}

// Events returns the inbound event channel. The coordinator drains it on
// its own loop so handler ordering stays explicit.
func (l *Listener) Events() <-chan models.SeatEvent {
	return l.events
}

// FlightID returns the flight this listener is scoped to.
func (l *Listener) FlightID() string {
	return l.flightID
}

// Close tears down the connection. The event channel closes once the
// read loop exits.
func (l *Listener) Close() error {
	select {
	case <-l.done:
	default:
		close(l.done)
	}
	return l.conn.Close()
}

func (l *Listener) readLoop() {
	defer close(l.events)

	for {
		_, data, err := l.conn.ReadMessage()
		if err != nil {
			select {
			case <-l.done:
			default:
				log.Printf("push: connection for flight %s closed: %v", l.flightID, err)
			}
			return
		}

		var ev models.SeatEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			// Malformed frames are skipped, never fatal.
			log.Printf("push: skipping malformed event: %v", err)
			continue
		}

		select {
		case l.events <- ev:
		case <-l.done:
			return
		}
	}
}
