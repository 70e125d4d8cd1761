package coordinator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// suppressWindow is how long a self-initiated unlock stays marked so the
// echoed seatUnlocked push does not raise a duplicate notice.
const suppressWindow = time.Second

// Session owns the lock identity for one browsing session: the session
// id sent with every lock/unlock call, the ordered local selection, and
// the short-lived suppression markers for unlocks this client initiated.
type Session struct {
	id        string
	maxSeats  int
	clock     Clock
	selection []string
	suppress  map[string]time.Time
}

// NewSession creates a session bounded by the passenger count. The id is
// a unix-milli timestamp plus a random suffix, unique enough to
// disambiguate concurrent sessions.
func NewSession(clock Clock, maxSeats int) *Session {
	return &Session{
		id:       fmt.Sprintf("%d-%s", clock.Now().UnixMilli(), uuid.NewString()[:8]),
		maxSeats: maxSeats,
		clock:    clock,
		suppress: make(map[string]time.Time),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// MaxSeats returns the selection capacity.
func (s *Session) MaxSeats() int { return s.maxSeats }

// Selection returns the selected seat numbers in selection order.
func (s *Session) Selection() []string {
	out := make([]string, len(s.selection))
	copy(out, s.selection)
	return out
}

// Holds reports whether the seat is in the local selection.
func (s *Session) Holds(seatNumber string) bool {
	for _, n := range s.selection {
		if n == seatNumber {
			return true
		}
	}
	return false
}

// AtCapacity reports whether the selection is full.
func (s *Session) AtCapacity() bool {
	return len(s.selection) >= s.maxSeats
}

// Empty reports whether nothing is selected.
func (s *Session) Empty() bool {
	return len(s.selection) == 0
}

// Add appends a seat to the selection.
func (s *Session) Add(seatNumber string) {
	if !s.Holds(seatNumber) {
		s.selection = append(s.selection, seatNumber)
	}
}

// Remove drops a seat from the selection. Returns true if it was held.
func (s *Session) Remove(seatNumber string) bool {
	for i, n := range s.selection {
		if n == seatNumber {
			s.selection = append(s.selection[:i], s.selection[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the selection.
func (s *Session) Clear() {
	s.selection = nil
}

// MarkSelfUnlock records that this client just unlocked the seat, so the
// server's echoed seatUnlocked push is not surfaced as a notice.
func (s *Session) MarkSelfUnlock(seatNumber string) {
	s.suppress[seatNumber] = s.clock.Now().Add(suppressWindow)
}

// SuppressedUnlock reports (and consumes) an active suppression marker
// for the seat. Stale markers are pruned as a side effect.
func (s *Session) SuppressedUnlock(seatNumber string) bool {
	now := s.clock.Now()
	for n, until := range s.suppress {
		if now.After(until) {
			delete(s.suppress, n)
		}
	}
	if _, ok := s.suppress[seatNumber]; ok {
		delete(s.suppress, seatNumber)
		return true
	}
	return false
}
