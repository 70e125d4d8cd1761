package models

import "time"

// EventType identifies the kind of seat push event.
type EventType string

const (
	EventSeatLocked    EventType = "seatLocked"
	EventSeatUnlocked  EventType = "seatUnlocked"
	EventSeatBooked    EventType = "seatBooked"
	EventSeatExpired   EventType = "seatExpired"
	EventSeatCancelled EventType = "seatCancelled"
)

// SeatEvent is one message on the per-flight push channel. LockedBy and
// ExpiresAt are present only for seatLocked events.
type SeatEvent struct {
	Type       EventType  `json:"type"`
	FlightID   string     `json:"flightId"`
	SeatNumber string     `json:"seatNumber"`
	LockedBy   string     `json:"lockedBy,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	Timestamp  int64      `json:"timestamp"`
}
