// Package telemetry tracks plant growth, resource flow, and step timings.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBranchGrown EventType = iota
	EventRootExtended
	EventRootForked
	EventExtensionRejected
	EventPoolConnected
	EventPoolDepleted
	EventWon
	EventLost
)

var eventNames = [...]string{
	EventBranchGrown:       "branch_grown",
	EventRootExtended:      "root_extended",
	EventRootForked:        "root_forked",
	EventExtensionRejected: "extension_rejected",
	EventPoolConnected:     "pool_connected",
	EventPoolDepleted:      "pool_depleted",
	EventWon:               "won",
	EventLost:              "lost",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// MarshalCSV writes the event type by name.
func (t EventType) MarshalCSV() (string, error) {
	return t.String(), nil
}

// Event is a single notable moment in a run, written to events.csv.
type Event struct {
	Tick int32     `csv:"tick"`
	Type EventType `csv:"type"`

	// Optional fields depending on event type
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	Count  int     `csv:"count"`  // pools connected, branches grown
	Reason string  `csv:"reason"` // rejection reason
}

// NewEvent creates an event of the given type at a world position.
func NewEvent(tick int32, typ EventType, x, y float64) Event {
	return Event{Tick: tick, Type: typ, X: x, Y: y}
}

// NewRejectionEvent records a refused root extension and why.
func NewRejectionEvent(tick int32, x, y float64, reason string) Event {
	return Event{Tick: tick, Type: EventExtensionRejected, X: x, Y: y, Reason: reason}
}
