package coordinator

import "errors"

// Local policy rejections. These are detected client-side from the
// freshest known state and never reach the network.
var (
	// ErrSeatUnavailable means the seat is already booked.
	ErrSeatUnavailable = errors.New("seat is no longer available")
	// ErrSeatLocked means another session actively holds the seat.
	ErrSeatLocked = errors.New("seat is held by another passenger")
	// ErrSelectionLimit means the selection already has one seat per passenger.
	ErrSelectionLimit = errors.New("you have already selected seats for all passengers")
	// ErrSelectionExpired means the hold window ran out; the flow is over.
	ErrSelectionExpired = errors.New("seat hold expired")
	// ErrSelectionIncomplete means confirm was attempted before every
	// passenger had a seat.
	ErrSelectionIncomplete = errors.New("select a seat for every passenger first")
	// ErrUnknownSeat means the seat number is not in the fetched inventory.
	ErrUnknownSeat = errors.New("unknown seat")
	// ErrNotLoaded means an operation ran before the seat fetch completed.
	ErrNotLoaded = errors.New("seats not loaded")
)
