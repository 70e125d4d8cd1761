// Package coordinator implements the client-side seat reservation state
// machine: the seat inventory view, the lock session manager, the hold
// countdown, and the round-trip step sequencer. All mutation goes through
// the Coordinator; the UI is a read-only subscriber.
package coordinator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/api"
	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/models"
)

// SeatAPI is the slice of the booking API the coordinator needs.
type SeatAPI interface {
	GetSeats(ctx context.Context, flightID string) ([]models.Seat, error)
	LockSeat(ctx context.Context, req api.LockRequest) error
	UnlockSeat(ctx context.Context, req api.UnlockRequest) error
}

// Pricer computes the total fare for a set of seats. Implementations
// fall back to static arithmetic when dynamic quoting fails, so Total
// never errors.
type Pricer interface {
	Total(ctx context.Context, seats []models.Seat) float64
}

// Config carries the itinerary and tuning for one coordinator.
type Config struct {
	OutboundFlightID string
	ReturnFlightID   string // empty for one-way
	Passengers       int
	HoldWindow       time.Duration // defaults to HoldWindow
	// Notify receives user-visible notices. Called synchronously; the
	// callback must not call back into the coordinator.
	Notify func(Notice)
}

// Coordinator owns all seat-selection state for one booking flow. Its
// methods are safe for concurrent use; the run loop serializes pushes,
// ticks, and user taps through it.
type Coordinator struct {
	mu    sync.Mutex
	api   SeatAPI
	price Pricer
	clock Clock
	cfg   Config

	seq       *Sequencer
	session   *Session
	countdown *Countdown
	inv       *Inventory

	// outboundSeats freezes the outbound leg's seat snapshots once the
	// flow advances to the return leg.
	outboundSeats []models.Seat
	expired       bool
}

// New creates a coordinator for one booking flow.
func New(seatAPI SeatAPI, pricer Pricer, clock Clock, cfg Config) *Coordinator {
	if cfg.HoldWindow <= 0 {
		cfg.HoldWindow = HoldWindow
	}
	if cfg.Passengers <= 0 {
		cfg.Passengers = 1
	}
	return &Coordinator{
		api:       seatAPI,
		price:     pricer,
		clock:     clock,
		cfg:       cfg,
		seq:       NewSequencer(cfg.OutboundFlightID, cfg.ReturnFlightID),
		session:   NewSession(clock, cfg.Passengers),
		countdown: NewCountdown(clock, cfg.HoldWindow),
	}
}

// SessionID returns the lock-ownership identifier for this session.
func (c *Coordinator) SessionID() string {
	return c.session.ID()
}

// Load fetches the seat inventory for the leg currently being selected.
// A failure here aborts entry into the seat map; the caller navigates
// back.
func (c *Coordinator) Load(ctx context.Context) error {
	c.mu.Lock()
	flightID := c.seq.CurrentFlightID()
	c.mu.Unlock()

	seats, err := c.api.GetSeats(ctx, flightID)
	if err != nil {
		return fmt.Errorf("failed to load seats for flight %s: %w", flightID, err)
	}

	c.mu.Lock()
	c.inv = NewInventory(flightID, seats)
	c.mu.Unlock()
	return nil
}

// SelectSeat toggles a seat: selecting it if free, deselecting it if the
// session already holds it. Local policy rejections (unavailable, held
// elsewhere, selection full) never reach the network; server rejections
// come back as *api.LockError / *api.UnlockError with the server's
// message verbatim.
func (c *Coordinator) SelectSeat(ctx context.Context, seatNumber string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.expired {
		return ErrSelectionExpired
	}
	if c.inv == nil {
		return ErrNotLoaded
	}

	if c.session.Holds(seatNumber) {
		return c.deselect(ctx, seatNumber)
	}

	seat := c.inv.Seat(seatNumber)
	if seat == nil {
		return ErrUnknownSeat
	}
	if !seat.Available {
		return ErrSeatUnavailable
	}
	if seat.LockedBy != "" && seat.LockedBy != c.session.ID() && seat.Locked(c.clock.Now()) {
		return ErrSeatLocked
	}

	previous := ""
	if c.session.AtCapacity() {
		if c.session.MaxSeats() != 1 {
			return ErrSelectionLimit
		}
		// Single-seat bookings replace instead of rejecting: the server
		// releases the previous seat atomically with the new lock.
		previous = c.session.Selection()[0]
	}

	err := c.api.LockSeat(ctx, api.LockRequest{
		FlightID:     c.inv.FlightID(),
		SeatNumber:   seatNumber,
		SessionID:    c.session.ID(),
		PreviousSeat: previous,
	})
	if err != nil {
		return err
	}

	if previous != "" {
		c.session.Remove(previous)
		if ps := c.inv.Seat(previous); ps != nil {
			ps.ClearLock()
		}
	}

	// Optimistic local lock. The server's seatLocked push confirms it,
	// or corrects us if another session won the race.
	expiresAt := c.clock.Now().Add(c.cfg.HoldWindow)
	seat.LockedBy = c.session.ID()
	seat.LockExpiresAt = &expiresAt
	c.session.Add(seatNumber)
	c.countdown.Start()
	return nil
}

// deselect releases a held seat. Caller holds the mutex.
func (c *Coordinator) deselect(ctx context.Context, seatNumber string) error {
	err := c.api.UnlockSeat(ctx, api.UnlockRequest{
		FlightID:   c.inv.FlightID(),
		SeatNumber: seatNumber,
		SessionID:  c.session.ID(),
	})
	if err != nil {
		// Selection unchanged on failure.
		return err
	}

	c.session.MarkSelfUnlock(seatNumber)
	c.session.Remove(seatNumber)
	if seat := c.inv.Seat(seatNumber); seat != nil {
		seat.ClearLock()
	}
	if c.session.Empty() {
		c.countdown.Stop()
	}
	return nil
}

// Apply reconciles one push event into the inventory and the local
// selection. Events for other flights are ignored; the server's view
// always wins over local optimistic state.
func (c *Coordinator) Apply(ev models.SeatEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inv == nil {
		return
	}
	seat := c.inv.Apply(ev)
	if seat == nil {
		return
	}

	switch ev.Type {
	case models.EventSeatLocked:
		if ev.LockedBy != c.session.ID() && c.session.Holds(ev.SeatNumber) {
			// Our lock-call result was stale; the server granted the
			// seat to someone else. Push is authoritative.
			c.session.Remove(ev.SeatNumber)
			c.notify(Notice{
				Level:      NoticeWarning,
				SeatNumber: ev.SeatNumber,
				Message:    fmt.Sprintf("Seat %s was taken by another passenger", ev.SeatNumber),
			})
			c.stopIfEmpty()
		}

	case models.EventSeatUnlocked:
		if c.session.SuppressedUnlock(ev.SeatNumber) {
			return
		}
		if c.session.Remove(ev.SeatNumber) {
			c.notify(Notice{
				Level:      NoticeWarning,
				SeatNumber: ev.SeatNumber,
				Message:    fmt.Sprintf("Seat %s was released", ev.SeatNumber),
			})
			c.stopIfEmpty()
		}

	case models.EventSeatBooked:
		if c.session.Remove(ev.SeatNumber) {
			c.notify(Notice{
				Level:      NoticeWarning,
				SeatNumber: ev.SeatNumber,
				Message:    fmt.Sprintf("Seat %s was booked by another passenger", ev.SeatNumber),
			})
			c.stopIfEmpty()
		}

	case models.EventSeatExpired:
		if c.session.Remove(ev.SeatNumber) {
			c.notify(Notice{
				Level:      NoticeWarning,
				SeatNumber: ev.SeatNumber,
				Message:    fmt.Sprintf("Your hold on seat %s expired", ev.SeatNumber),
			})
			c.stopIfEmpty()
		}

	case models.EventSeatCancelled:
		// Seat freed by a cancelled booking elsewhere; nothing to
		// reconcile locally.
	}
}

// Tick checks the hold window. At zero it clears all local selection
// state, surfaces the expiry notice, and latches the expired flag so no
// further selection is possible. Returns true once expired.
func (c *Coordinator) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.expired {
		return true
	}
	if !c.countdown.Expired() {
		return false
	}

	c.expired = true
	if c.inv != nil {
		for _, n := range c.session.Selection() {
			if seat := c.inv.Seat(n); seat != nil {
				seat.ClearLock()
			}
		}
	}
	c.session.Clear()
	c.outboundSeats = nil
	c.notify(Notice{
		Level:   NoticeError,
		Message: "Time expired. Your seats have been released.",
	})
	return true
}

// ConfirmSelection completes the current leg. For the outbound leg of a
// round trip it freezes the selection, refetches the return leg's
// inventory, and returns (nil, nil): the flow continues. For the final
// leg it returns the handoff for the booking-confirmation stage. The
// countdown deadline is never reset by the leg transition.
func (c *Coordinator) ConfirmSelection(ctx context.Context) (*models.Handoff, error) {
	c.mu.Lock()
	if c.expired {
		c.mu.Unlock()
		return nil, ErrSelectionExpired
	}
	if c.inv == nil {
		c.mu.Unlock()
		return nil, ErrNotLoaded
	}
	if !c.session.AtCapacity() {
		c.mu.Unlock()
		return nil, ErrSelectionIncomplete
	}

	if c.seq.Step() == StepOutbound && c.seq.RoundTrip() {
		returnFlightID := c.seq.ReturnFlightID()
		c.mu.Unlock()

		seats, err := c.api.GetSeats(ctx, returnFlightID)
		if err != nil {
			return nil, fmt.Errorf("failed to load seats for flight %s: %w", returnFlightID, err)
		}

		c.mu.Lock()
		c.outboundSeats = c.selectedSeats()
		c.seq.Advance(c.session.Selection())
		c.session.Clear()
		c.inv = NewInventory(returnFlightID, seats)
		c.mu.Unlock()
		return nil, nil
	}

	selected := c.selectedSeats()
	outbound := c.outboundSeats
	handoff := &models.Handoff{
		FlightID:       c.seq.OutboundFlightID(),
		ReturnFlightID: c.seq.ReturnFlightID(),
		LockStartTime:  c.countdown.StartTime(),
	}
	c.mu.Unlock()

	all := selected
	if c.seq.RoundTrip() {
		handoff.Seats = outbound
		handoff.ReturnSeats = selected
		all = append(append([]models.Seat{}, outbound...), selected...)
	} else {
		handoff.Seats = selected
	}
	handoff.TotalPrice = c.price.Total(ctx, all)
	return handoff, nil
}

// Release best-effort unlocks every seat the session still holds, for
// navigate-away cleanup. Server-side expiry reclaims anything this
// misses, so failures are only logged.
func (c *Coordinator) Release(ctx context.Context) {
	c.mu.Lock()
	if c.inv == nil {
		c.mu.Unlock()
		return
	}
	flightID := c.inv.FlightID()
	sessionID := c.session.ID()
	held := c.session.Selection()
	c.session.Clear()
	c.countdown.Stop()
	c.mu.Unlock()

	for _, seatNumber := range held {
		err := c.api.UnlockSeat(ctx, api.UnlockRequest{
			FlightID:   flightID,
			SeatNumber: seatNumber,
			SessionID:  sessionID,
		})
		if err != nil {
			log.Printf("coordinator: failed to release seat %s: %v", seatNumber, err)
		}
	}
}

// Selection returns the selected seat numbers for the current leg.
func (c *Coordinator) Selection() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Selection()
}

// OutboundSelection returns the frozen outbound selection, empty until
// the flow advances to the return leg.
func (c *Coordinator) OutboundSelection() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.OutboundSeats()
}

// Step returns the current sequencer phase.
func (c *Coordinator) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.Step()
}

// Remaining returns whole seconds left in the hold window.
func (c *Coordinator) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countdown.Remaining()
}

// LockStartTime returns the deadline origin, zero before the first lock.
func (c *Coordinator) LockStartTime() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countdown.StartTime()
}

// Expired reports whether the hold window has run out.
func (c *Coordinator) Expired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expired
}

// Rows returns the current leg's seats grouped by row for display.
func (c *Coordinator) Rows() []Row {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inv == nil {
		return nil
	}
	return c.inv.Rows()
}

// Seat returns a snapshot of one seat, or nil if unknown.
func (c *Coordinator) Seat(seatNumber string) *models.Seat {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inv == nil {
		return nil
	}
	seat := c.inv.Seat(seatNumber)
	if seat == nil {
		return nil
	}
	snapshot := *seat
	return &snapshot
}

// selectedSeats snapshots the seat models for the live selection.
// Caller holds the mutex.
func (c *Coordinator) selectedSeats() []models.Seat {
	out := make([]models.Seat, 0, len(c.session.Selection()))
	for _, n := range c.session.Selection() {
		if seat := c.inv.Seat(n); seat != nil {
			out = append(out, *seat)
		}
	}
	return out
}

func (c *Coordinator) stopIfEmpty() {
	if c.session.Empty() {
		c.countdown.Stop()
	}
}

func (c *Coordinator) notify(n Notice) {
	if c.cfg.Notify != nil {
		c.cfg.Notify(n)
	}
}
