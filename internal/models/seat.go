package models

import (
	"fmt"
	"regexp"
	"time"
)

// TravelClass is the cabin class of a seat, derived from its row number.
type TravelClass string

const (
	TravelClassFirst    TravelClass = "first"
	TravelClassBusiness TravelClass = "business"
	TravelClassEconomy  TravelClass = "economy"
)

// SeatPosition describes where in the row a seat sits. It feeds the
// dynamic pricing quote.
type SeatPosition string

const (
	SeatPositionWindow SeatPosition = "window"
	SeatPositionAisle  SeatPosition = "aisle"
	SeatPositionMiddle SeatPosition = "middle"
)

// Seat represents one physical seat on one flight leg as reported by the
// booking API. LockedBy and LockExpiresAt are set only while an active
// lock exists on the seat.
type Seat struct {
	SeatNumber    string      `json:"seatNumber"`
	TravelClass   TravelClass `json:"travelClass"`
	Available     bool        `json:"isAvailable"`
	ExtraLegroom  bool        `json:"isExtraLegroom"`
	LockedBy      string      `json:"lockedBy,omitempty"`
	LockExpiresAt *time.Time  `json:"lockExpiresAt,omitempty"`
}

// Locked reports whether the seat carries a lock that has not expired as
// of now.
func (s *Seat) Locked(now time.Time) bool {
	if s.LockedBy == "" {
		return false
	}
	if s.LockExpiresAt != nil && !now.Before(*s.LockExpiresAt) {
		return false
	}
	return true
}

// ClearLock removes any lock ownership from the seat.
func (s *Seat) ClearLock() {
	s.LockedBy = ""
	s.LockExpiresAt = nil
}

var seatNumberPattern = regexp.MustCompile(`^(\d+)([A-F])$`)

// ParseSeatNumber splits a seat number such as "12A" into its row number
// and column letter.
func ParseSeatNumber(seatNumber string) (row int, letter string, err error) {
	m := seatNumberPattern.FindStringSubmatch(seatNumber)
	if m == nil {
		return 0, "", fmt.Errorf("invalid seat number: %q", seatNumber)
	}
	// The pattern guarantees digits only, so Sscanf cannot fail here.
	fmt.Sscanf(m[1], "%d", &row)
	return row, m[2], nil
}

// ClassForRow maps a row number to its travel class: rows 1-2 are first,
// rows 3-7 business, everything after that economy.
func ClassForRow(row int) TravelClass {
	switch {
	case row <= 2:
		return TravelClassFirst
	case row <= 7:
		return TravelClassBusiness
	default:
		return TravelClassEconomy
	}
}

// PositionForLetter maps a column letter to its seat position in a
// standard A-F single-aisle layout.
func PositionForLetter(letter string) SeatPosition {
	switch letter {
	case "A", "F":
		return SeatPositionWindow
	case "C", "D":
		return SeatPositionAisle
	default:
		return SeatPositionMiddle
	}
}

// ClassForSeatNumber derives the travel class straight from a seat number.
func ClassForSeatNumber(seatNumber string) (TravelClass, error) {
	row, _, err := ParseSeatNumber(seatNumber)
	if err != nil {
		return "", err
	}
	return ClassForRow(row), nil
}
