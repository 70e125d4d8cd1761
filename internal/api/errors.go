package api

import "errors"

// ErrFlightNotFound is returned when the booking API has no seats for the
// requested flight.
var ErrFlightNotFound = errors.New("flight not found")

// LockError is a server rejection of a lock request. Message is the
// server's message verbatim and is shown to the user unchanged.
type LockError struct {
	SeatNumber string
	Message    string
}

func (e *LockError) Error() string {
	return e.Message
}

// UnlockError is a server rejection of an unlock request.
type UnlockError struct {
	SeatNumber string
	Message    string
}

func (e *UnlockError) Error() string {
	return e.Message
}
