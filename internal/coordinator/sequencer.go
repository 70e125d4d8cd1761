package coordinator

// Step is the phase of the round-trip seat-selection flow.
type Step string

const (
	StepOutbound Step = "outbound"
	StepReturn   Step = "return"
)

// Sequencer drives the two-phase outbound/return flow. The return leg's
// inventory, locks, and selection are entirely separate collections; only
// the step value and the frozen outbound selection cross the boundary.
// Backward navigation from return to outbound is unsupported: restoring
// outbound locks after the fact has no defined server contract.
type Sequencer struct {
	outboundFlightID string
	returnFlightID   string
	step             Step
	outboundSeats    []string
}

// NewSequencer creates the step state for an itinerary. An empty
// returnFlightID means a one-way booking with a single outbound pass.
func NewSequencer(outboundFlightID, returnFlightID string) *Sequencer {
	return &Sequencer{
		outboundFlightID: outboundFlightID,
		returnFlightID:   returnFlightID,
		step:             StepOutbound,
	}
}

// Step returns the current phase.
func (q *Sequencer) Step() Step { return q.step }

// RoundTrip reports whether the itinerary has a return leg.
func (q *Sequencer) RoundTrip() bool { return q.returnFlightID != "" }

// CurrentFlightID returns the flight id the live selection applies to.
func (q *Sequencer) CurrentFlightID() string {
	if q.step == StepReturn {
		return q.returnFlightID
	}
	return q.outboundFlightID
}

// OutboundFlightID returns the outbound leg's flight id.
func (q *Sequencer) OutboundFlightID() string { return q.outboundFlightID }

// ReturnFlightID returns the return leg's flight id, empty for one-way.
func (q *Sequencer) ReturnFlightID() string { return q.returnFlightID }

// OutboundSeats returns the frozen outbound selection, set when the flow
// advanced past the outbound leg.
func (q *Sequencer) OutboundSeats() []string {
	out := make([]string, len(q.outboundSeats))
	copy(out, q.outboundSeats)
	return out
}

// Advance freezes the completed outbound selection and moves to the
// return leg. Returns false when there is no further leg, i.e. the flow
// is complete and ready for handoff.
func (q *Sequencer) Advance(selection []string) bool {
	if q.step == StepOutbound && q.RoundTrip() {
		q.outboundSeats = make([]string, len(selection))
		copy(q.outboundSeats, selection)
		q.step = StepReturn
		return true
	}
	return false
}
