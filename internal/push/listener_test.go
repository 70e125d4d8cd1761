package push

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/models"
)

// wsURL rewrites an httptest server URL into a WebSocket base URL.
func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

// serveEvents returns the test server plus a func that force-closes the
// underlying TCP connections of upgraded WebSockets. httptest stops
// tracking connections once they are hijacked for the WebSocket upgrade,
// so Server.CloseClientConnections cannot reach them.
func serveEvents(t *testing.T, frames ...interface{}) (*httptest.Server, func()) {
	t.Helper()
	upgrader := websocket.Upgrader{}

	var mu sync.Mutex
	var conns []net.Conn

	r := mux.NewRouter()
	r.HandleFunc("/seats/flight/{flightId}/ws", func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		require.NoError(t, err)
		defer conn.Close()

		mu.Lock()
		conns = append(conns, conn.UnderlyingConn())
		mu.Unlock()

		for _, frame := range frames {
			switch f := frame.(type) {
			case string:
				require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(f)))
			default:
				require.NoError(t, conn.WriteJSON(f))
			}
		}
		// Hold the connection until the client closes it.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	return httptest.NewServer(r), func() {
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	}
}

func TestListener_DeliversEvents(t *testing.T) {
	exp := time.Date(2024, 6, 1, 12, 10, 0, 0, time.UTC)
	srv, _ := serveEvents(t,
		models.SeatEvent{Type: models.EventSeatLocked, FlightID: "FL001", SeatNumber: "5A",
			LockedBy: "session-a", ExpiresAt: &exp},
		models.SeatEvent{Type: models.EventSeatBooked, FlightID: "FL001", SeatNumber: "5A"},
	)
	defer srv.Close()

	l, err := Dial(context.Background(), wsURL(srv), "FL001")
	require.NoError(t, err)
	defer l.Close()

	ev := receive(t, l)
	assert.Equal(t, models.EventSeatLocked, ev.Type)
	assert.Equal(t, "session-a", ev.LockedBy)
	require.NotNil(t, ev.ExpiresAt)
	assert.True(t, ev.ExpiresAt.Equal(exp))

	ev = receive(t, l)
	assert.Equal(t, models.EventSeatBooked, ev.Type)
	assert.Equal(t, "5A", ev.SeatNumber)
}

func TestListener_SkipsMalformedFrames(t *testing.T) {
	srv, _ := serveEvents(t,
		"{not json",
		models.SeatEvent{Type: models.EventSeatUnlocked, FlightID: "FL001", SeatNumber: "7C"},
	)
	defer srv.Close()

	l, err := Dial(context.Background(), wsURL(srv), "FL001")
	require.NoError(t, err)
	defer l.Close()

	ev := receive(t, l)
	assert.Equal(t, models.EventSeatUnlocked, ev.Type)
	assert.Equal(t, "7C", ev.SeatNumber)
}

func TestListener_ChannelClosesOnDisconnect(t *testing.T) {
	srv, closeConns := serveEvents(t)
	defer srv.Close()

	l, err := Dial(context.Background(), wsURL(srv), "FL001")
	require.NoError(t, err)
	defer l.Close()

	closeConns()

	select {
	case _, ok := <-l.Events():
		assert.False(t, ok, "channel must close when the connection drops")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestListener_DialFailure(t *testing.T) {
	_, err := Dial(context.Background(), "ws://127.0.0.1:0", "FL001")
	assert.Error(t, err)
}

func receive(t *testing.T, l *Listener) models.SeatEvent {
	t.Helper()
	select {
	case ev, ok := <-l.Events():
		require.True(t, ok, "event channel closed unexpectedly")
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return models.SeatEvent{}
	}
}
