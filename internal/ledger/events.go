package ledger

// EventKind classifies ledger events.
type EventKind int

const (
	// EventStarted fires when the first answer lands on an empty ledger.
	EventStarted EventKind = iota
	// EventPhaseCompleted fires when a section's last open question is
	// answered. Section and Phase identify which one.
	EventPhaseCompleted
	// EventFullyCompleted fires when the completion oracle flips to
	// true, whether through the explicit mark or the all-answered
	// fallback. It fires at most once per flip (a reset re-arms it).
	EventFullyCompleted
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventPhaseCompleted:
		return "phaseCompleted"
	case EventFullyCompleted:
		return "fullyCompleted"
	default:
		return "unknown"
	}
}

// Event is the typed notification a ledger emits on milestone
// transitions. Subscribers (the mission tracker, persistence) receive
// it synchronously within the mutating call.
type Event struct {
	Instrument Instrument
	Kind       EventKind

	// Section and Phase are set for EventPhaseCompleted only.
	// Phase is 1-based, in section presentation order.
	Section string
	Phase   int
}
