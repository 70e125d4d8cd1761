package stub

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/api"
	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/models"
	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/push"
)

func newTestServer(t *testing.T) (*httptest.Server, *api.Client) {
	t.Helper()
	store := NewStore(600 * time.Second)
	store.AddFlight("FL001", 10, 1)
	srv := httptest.NewServer(NewServer(store).Router())
	t.Cleanup(srv.Close)
	return srv, api.NewClient(srv.URL + "/api")
}

func TestServer_SeatsFetch(t *testing.T) {
	_, client := newTestServer(t)

	seats, err := client.GetSeats(context.Background(), "FL001")
	require.NoError(t, err)
	assert.Len(t, seats, 60)

	_, err = client.GetSeats(context.Background(), "FL999")
	assert.ErrorIs(t, err, api.ErrFlightNotFound)
}

func TestServer_LockRaceBroadcastsWinner(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()

	wsBase := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api"
	listener, err := push.Dial(ctx, wsBase, "FL001")
	require.NoError(t, err)
	defer listener.Close()

	// Session A wins the seat.
	require.NoError(t, client.LockSeat(ctx, api.LockRequest{
		FlightID: "FL001", SeatNumber: "5A", SessionID: "session-a",
	}))

	// Session B races for it and loses with the server's message.
	err = client.LockSeat(ctx, api.LockRequest{
		FlightID: "FL001", SeatNumber: "5A", SessionID: "session-b",
	})
	var lockErr *api.LockError
	require.ErrorAs(t, err, &lockErr)
	assert.Contains(t, lockErr.Message, "locked by another session")

	// The push channel names the winner.
	select {
	case ev := <-listener.Events():
		assert.Equal(t, models.EventSeatLocked, ev.Type)
		assert.Equal(t, "5A", ev.SeatNumber)
		assert.Equal(t, "session-a", ev.LockedBy)
		require.NotNil(t, ev.ExpiresAt)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for seatLocked event")
	}
}

func TestServer_UnlockBroadcasts(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, client.LockSeat(ctx, api.LockRequest{
		FlightID: "FL001", SeatNumber: "7C", SessionID: "session-a",
	}))

	wsBase := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api"
	listener, err := push.Dial(ctx, wsBase, "FL001")
	require.NoError(t, err)
	defer listener.Close()

	require.NoError(t, client.UnlockSeat(ctx, api.UnlockRequest{
		FlightID: "FL001", SeatNumber: "7C", SessionID: "session-a",
	}))

	select {
	case ev := <-listener.Events():
		assert.Equal(t, models.EventSeatUnlocked, ev.Type)
		assert.Equal(t, "7C", ev.SeatNumber)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for seatUnlocked event")
	}
}

func TestServer_QuoteAppliesPositionSurcharge(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	window, err := client.QuoteSeat(ctx, api.QuoteRequest{
		TravelClass: models.TravelClassEconomy, Position: models.SeatPositionWindow,
	})
	require.NoError(t, err)
	middle, err := client.QuoteSeat(ctx, api.QuoteRequest{
		TravelClass: models.TravelClassEconomy, Position: models.SeatPositionMiddle,
	})
	require.NoError(t, err)

	// (100 + 10) * 1.1 vs 100 * 1.1
	assert.InDelta(t, 121, window, 0.001)
	assert.InDelta(t, 110, middle, 0.001)
	assert.Greater(t, window, middle)
}

func TestServer_BookingLifecycle(t *testing.T) {
	srv, client := newTestServer(t)
	ctx := context.Background()

	require.NoError(t, client.LockSeat(ctx, api.LockRequest{
		FlightID: "FL001", SeatNumber: "9D", SessionID: "session-a",
	}))

	body, _ := json.Marshal(map[string]string{"flightId": "FL001", "sessionId": "session-a"})
	resp, err := http.Post(srv.URL+"/api/bookings", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created["bookingId"])

	seats, err := client.GetSeats(ctx, "FL001")
	require.NoError(t, err)
	for _, seat := range seats {
		if seat.SeatNumber == "9D" {
			assert.False(t, seat.Available)
		}
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/bookings/"+created["bookingId"], nil)
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	seats, err = client.GetSeats(ctx, "FL001")
	require.NoError(t, err)
	for _, seat := range seats {
		if seat.SeatNumber == "9D" {
			assert.True(t, seat.Available)
		}
	}
}
