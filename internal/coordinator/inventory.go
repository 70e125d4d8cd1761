package coordinator

import (
	"sort"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/models"
)

// Inventory is the client's view of every seat on the flight leg being
// selected. It is rebuilt from the initial fetch and mutated only by push
// events and lock-call results; the server remains authoritative.
type Inventory struct {
	flightID string
	seats    map[string]*models.Seat
	order    []string
}

// NewInventory builds the inventory for one flight from a seat fetch.
func NewInventory(flightID string, seats []models.Seat) *Inventory {
	inv := &Inventory{
		flightID: flightID,
		seats:    make(map[string]*models.Seat, len(seats)),
		order:    make([]string, 0, len(seats)),
	}
	for i := range seats {
		s := seats[i]
		if _, ok := inv.seats[s.SeatNumber]; ok {
			continue
		}
		inv.seats[s.SeatNumber] = &s
		inv.order = append(inv.order, s.SeatNumber)
	}
	return inv
}

// FlightID returns the flight this inventory is scoped to.
func (inv *Inventory) FlightID() string {
	return inv.flightID
}

// Seat returns the seat with the given number, or nil if unknown.
func (inv *Inventory) Seat(seatNumber string) *models.Seat {
	return inv.seats[seatNumber]
}

// Seats returns all seats in fetch order.
func (inv *Inventory) Seats() []models.Seat {
	out := make([]models.Seat, 0, len(inv.order))
	for _, n := range inv.order {
		out = append(out, *inv.seats[n])
	}
	return out
}

// Row groups the seats of one physical row for display. Class is derived
// from the row number and drives seat color coding.
type Row struct {
	Number int
	Class  models.TravelClass
	Seats  []models.Seat
}

// Rows groups seats by row number parsed from the seat number, sorted by
// row then column letter. Seats with unparseable numbers are omitted.
func (inv *Inventory) Rows() []Row {
	byRow := make(map[int][]models.Seat)
	for _, n := range inv.order {
		row, _, err := models.ParseSeatNumber(n)
		if err != nil {
			continue
		}
		byRow[row] = append(byRow[row], *inv.seats[n])
	}

	rows := make([]Row, 0, len(byRow))
	for num, seats := range byRow {
		sort.Slice(seats, func(i, j int) bool {
			return seats[i].SeatNumber < seats[j].SeatNumber
		})
		rows = append(rows, Row{Number: num, Class: models.ClassForRow(num), Seats: seats})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Number < rows[j].Number })
	return rows
}

// Apply mutates the seat named by a push event. Events for other flights
// or unknown seats are ignored. It returns the mutated seat, or nil when
// the event was a no-op.
func (inv *Inventory) Apply(ev models.SeatEvent) *models.Seat {
	if ev.FlightID != inv.flightID {
		return nil
	}
	seat, ok := inv.seats[ev.SeatNumber]
	if !ok {
		return nil
	}

	switch ev.Type {
	case models.EventSeatLocked:
		seat.LockedBy = ev.LockedBy
		seat.LockExpiresAt = ev.ExpiresAt
	case models.EventSeatUnlocked, models.EventSeatExpired:
		seat.ClearLock()
	case models.EventSeatBooked:
		seat.Available = false
		seat.ClearLock()
	case models.EventSeatCancelled:
		seat.Available = true
		seat.ClearLock()
	default:
		return nil
	}
	return seat
}
