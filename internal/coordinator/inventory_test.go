package coordinator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/models"
)

func TestInventory_RowsGroupAndClassify(t *testing.T) {
	inv := NewInventory("FL001", availableSeats("2B", "1A", "5C", "12F", "12A"))

	rows := inv.Rows()
	require.Len(t, rows, 4)

	assert.Equal(t, 1, rows[0].Number)
	assert.Equal(t, models.TravelClassFirst, rows[0].Class)
	assert.Equal(t, models.TravelClassFirst, rows[1].Class)
	assert.Equal(t, models.TravelClassBusiness, rows[2].Class)
	assert.Equal(t, models.TravelClassEconomy, rows[3].Class)

	assert.Equal(t, "12A", rows[3].Seats[0].SeatNumber)
	assert.Equal(t, "12F", rows[3].Seats[1].SeatNumber)
}

func TestInventory_SeatBookedAlwaysWins(t *testing.T) {
	// Push-reconciliation law: seatBooked forces unavailable + no lock
	// regardless of prior state.
	exp := time.Date(2024, 6, 1, 12, 10, 0, 0, time.UTC)
	priors := []models.Seat{
		{SeatNumber: "4D", TravelClass: models.TravelClassBusiness, Available: true},
		{SeatNumber: "4D", TravelClass: models.TravelClassBusiness, Available: true,
			LockedBy: "other", LockExpiresAt: &exp},
		{SeatNumber: "4D", TravelClass: models.TravelClassBusiness, Available: false},
	}

	for _, prior := range priors {
		inv := NewInventory("FL001", []models.Seat{prior})
		inv.Apply(models.SeatEvent{
			Type: models.EventSeatBooked, FlightID: "FL001", SeatNumber: "4D",
		})

		seat := inv.Seat("4D")
		require.NotNil(t, seat)
		assert.False(t, seat.Available)
		assert.Empty(t, seat.LockedBy)
		assert.Nil(t, seat.LockExpiresAt)
	}
}

func TestInventory_SeatCancelledFreesSeat(t *testing.T) {
	inv := NewInventory("FL001", []models.Seat{
		{SeatNumber: "7A", TravelClass: models.TravelClassBusiness, Available: false},
	})

	inv.Apply(models.SeatEvent{
		Type: models.EventSeatCancelled, FlightID: "FL001", SeatNumber: "7A",
	})

	seat := inv.Seat("7A")
	require.NotNil(t, seat)
	assert.True(t, seat.Available)
	assert.Empty(t, seat.LockedBy)
}

func TestInventory_ApplyScopedToFlight(t *testing.T) {
	inv := NewInventory("FL001", availableSeats("7A"))

	got := inv.Apply(models.SeatEvent{
		Type: models.EventSeatBooked, FlightID: "FL002", SeatNumber: "7A",
	})

	assert.Nil(t, got)
	assert.True(t, inv.Seat("7A").Available)
}

func TestInventory_UnknownSeatEventIsAbsorbed(t *testing.T) {
	inv := NewInventory("FL001", availableSeats("7A"))

	got := inv.Apply(models.SeatEvent{
		Type: models.EventSeatLocked, FlightID: "FL001", SeatNumber: "99Z",
	})

	assert.Nil(t, got)
}
