package models

import "time"

// Handoff is the contract passed to the booking-confirmation stage once
// seat selection completes. For one-way itineraries the return fields are
// empty. LockStartTime is the instant of the first successful lock; the
// confirmation stage derives its own countdown display from it so both
// screens agree on the same deadline.
type Handoff struct {
	FlightID       string    `json:"flightId"`
	ReturnFlightID string    `json:"returnFlightId,omitempty"`
	Seats          []Seat    `json:"seats"`
	ReturnSeats    []Seat    `json:"returnSeats,omitempty"`
	TotalPrice     float64   `json:"totalPrice"`
	LockStartTime  time.Time `json:"lockStartTime"`
}

// RoundTrip reports whether the handoff covers both legs of a round trip.
func (h *Handoff) RoundTrip() bool {
	return h.ReturnFlightID != ""
}
