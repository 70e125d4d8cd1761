package stub

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/models"
)

// Store is the in-memory seat inventory behind the stub API. It is the
// single arbiter of seat locks: at most one active lock per seat, expired
// locks treated as free, and every state change reported as the seat
// events to broadcast.
type Store struct {
	mu         sync.Mutex
	holdWindow time.Duration
	now        func() time.Time
	flights    map[string]*flightSeats
	bookings   map[string]*booking
}

type flightSeats struct {
	seats map[string]*models.Seat
	order []string
}

type booking struct {
	id        string
	flightID  string
	sessionID string
	seats     []string
}

// NewStore creates an empty store with the given hold window.
func NewStore(holdWindow time.Duration) *Store {
	return &Store{
		holdWindow: holdWindow,
		now:        time.Now,
		flights:    make(map[string]*flightSeats),
		bookings:   make(map[string]*booking),
	}
}

// AddFlight seeds a flight with rows of seats A-F. Rows listed in
// extraLegroomRows get the extra-legroom flag.
func (s *Store) AddFlight(flightID string, rows int, extraLegroomRows ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	legroom := make(map[int]bool, len(extraLegroomRows))
	for _, r := range extraLegroomRows {
		legroom[r] = true
	}

	fs := &flightSeats{seats: make(map[string]*models.Seat)}
	for row := 1; row <= rows; row++ {
		for _, col := range []string{"A", "B", "C", "D", "E", "F"} {
			seatNumber := fmt.Sprintf("%d%s", row, col)
			fs.seats[seatNumber] = &models.Seat{
				SeatNumber:   seatNumber,
				TravelClass:  models.ClassForRow(row),
				Available:    true,
				ExtraLegroom: legroom[row],
			}
			fs.order = append(fs.order, seatNumber)
		}
	}
	s.flights[flightID] = fs
}

// Seats returns a snapshot of a flight's seats in seating order.
func (s *Store) Seats(flightID string) ([]models.Seat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs, ok := s.flights[flightID]
	if !ok {
		return nil, false
	}
	out := make([]models.Seat, 0, len(fs.order))
	for _, n := range fs.order {
		out = append(out, *fs.seats[n])
	}
	return out, true
}

// Lock grants a session an exclusive hold on a seat. When previousSeat
// is set it is released atomically with the grant (single-seat replace).
// Returns the events to broadcast.
func (s *Store) Lock(flightID, seatNumber, sessionID, previousSeat string) ([]models.SeatEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs, ok := s.flights[flightID]
	if !ok {
		return nil, fmt.Errorf("flight %s not found", flightID)
	}
	seat, ok := fs.seats[seatNumber]
	if !ok {
		return nil, fmt.Errorf("seat %s not found", seatNumber)
	}

	now := s.now()
	if !seat.Available {
		return nil, fmt.Errorf("seat %s is already booked", seatNumber)
	}
	if seat.Locked(now) && seat.LockedBy != sessionID {
		return nil, fmt.Errorf("seat %s is locked by another session", seatNumber)
	}

	var events []models.SeatEvent

	if previousSeat != "" {
		prev, ok := fs.seats[previousSeat]
		if !ok || prev.LockedBy != sessionID {
			return nil, fmt.Errorf("seat %s is not locked by this session", previousSeat)
		}
		prev.ClearLock()
		events = append(events, s.event(models.EventSeatUnlocked, flightID, previousSeat, nil))
	}

	expiresAt := now.Add(s.holdWindow)
	seat.LockedBy = sessionID
	seat.LockExpiresAt = &expiresAt
	events = append(events, models.SeatEvent{
		Type:       models.EventSeatLocked,
		FlightID:   flightID,
		SeatNumber: seatNumber,
		LockedBy:   sessionID,
		ExpiresAt:  &expiresAt,
		Timestamp:  now.UnixMilli(),
	})
	return events, nil
}

// Unlock releases a lock held by the session.
func (s *Store) Unlock(flightID, seatNumber, sessionID string) ([]models.SeatEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs, ok := s.flights[flightID]
	if !ok {
		return nil, fmt.Errorf("flight %s not found", flightID)
	}
	seat, ok := fs.seats[seatNumber]
	if !ok {
		return nil, fmt.Errorf("seat %s not found", seatNumber)
	}
	if seat.LockedBy != sessionID {
		return nil, fmt.Errorf("seat %s is not locked by this session", seatNumber)
	}

	seat.ClearLock()
	return []models.SeatEvent{s.event(models.EventSeatUnlocked, flightID, seatNumber, nil)}, nil
}

// Book converts every seat the session holds on the flight into a
// permanent booking.
func (s *Store) Book(flightID, sessionID string) (string, []models.SeatEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs, ok := s.flights[flightID]
	if !ok {
		return "", nil, fmt.Errorf("flight %s not found", flightID)
	}

	now := s.now()
	var seats []string
	for _, n := range fs.order {
		seat := fs.seats[n]
		if seat.LockedBy == sessionID && seat.Locked(now) {
			seats = append(seats, n)
		}
	}
	if len(seats) == 0 {
		return "", nil, fmt.Errorf("no locked seats for this session")
	}

	var events []models.SeatEvent
	for _, n := range seats {
		seat := fs.seats[n]
		seat.Available = false
		seat.ClearLock()
		events = append(events, s.event(models.EventSeatBooked, flightID, n, nil))
	}

	id := uuid.New().String()[:8]
	s.bookings[id] = &booking{id: id, flightID: flightID, sessionID: sessionID, seats: seats}
	return id, events, nil
}

// CancelBooking frees the seats of a confirmed booking.
func (s *Store) CancelBooking(bookingID string) ([]models.SeatEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s not found", bookingID)
	}
	delete(s.bookings, bookingID)

	fs := s.flights[b.flightID]
	var events []models.SeatEvent
	for _, n := range b.seats {
		if seat, ok := fs.seats[n]; ok {
			seat.Available = true
			seat.ClearLock()
			events = append(events, s.event(models.EventSeatCancelled, b.flightID, n, nil))
		}
	}
	return events, nil
}

// ReapExpired clears every expired lock and returns the seatExpired
// events to broadcast.
func (s *Store) ReapExpired() []models.SeatEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var events []models.SeatEvent
	for flightID, fs := range s.flights {
		for _, n := range fs.order {
			seat := fs.seats[n]
			if seat.LockedBy != "" && seat.LockExpiresAt != nil && !now.Before(*seat.LockExpiresAt) {
				seat.ClearLock()
				events = append(events, s.event(models.EventSeatExpired, flightID, n, nil))
			}
		}
	}
	return events
}

func (s *Store) event(t models.EventType, flightID, seatNumber string, expiresAt *time.Time) models.SeatEvent {
	return models.SeatEvent{
		Type:       t,
		FlightID:   flightID,
		SeatNumber: seatNumber,
		ExpiresAt:  expiresAt,
		Timestamp:  s.now().UnixMilli(),
	}
}
