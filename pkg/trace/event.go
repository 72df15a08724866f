package trace

import "time"

// Event is one diagnostic event from a discovery pass.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// PassID correlates all events of one discovery pass (UUID).
	PassID string `cbor:"2,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Network is the network the pass targets.
	Network string `cbor:"4,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Pass  *PassEvent      `cbor:"10,keyasint,omitempty"` // Pass start/end
	Fetch *FetchEvent     `cbor:"11,keyasint,omitempty"` // One fetched relay event
	Drop  *DropEvent      `cbor:"12,keyasint,omitempty"` // Dropped event or entries
	Error *ErrorEventData `cbor:"13,keyasint,omitempty"` // Errors at any stage
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryPass indicates a pass lifecycle event.
	CategoryPass Category = 0
	// CategoryFetch indicates a fetched relay event.
	CategoryFetch Category = 1
	// CategoryDrop indicates dropped data.
	CategoryDrop Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryPass:
		return "PASS"
	case CategoryFetch:
		return "FETCH"
	case CategoryDrop:
		return "DROP"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// PassEvent captures the start or end of a discovery pass.
type PassEvent struct {
	// Phase is the pass lifecycle phase.
	Phase PassPhase `cbor:"1,keyasint"`

	// Relays lists the relay URLs queried (start only).
	Relays []string `cbor:"2,keyasint,omitempty"`

	// EventsFetched is the number of events fetched (end only).
	EventsFetched int `cbor:"3,keyasint,omitempty"`

	// CashuMints is the number of aggregated Cashu mints (end only).
	CashuMints int `cbor:"4,keyasint,omitempty"`

	// Federations is the number of aggregated federations (end only).
	Federations int `cbor:"5,keyasint,omitempty"`
}

// PassPhase is the pass lifecycle phase.
type PassPhase uint8

const (
	// PhaseStart indicates the pass started.
	PhaseStart PassPhase = 0
	// PhaseEnd indicates the pass completed.
	PhaseEnd PassPhase = 1
)

// String returns the phase name.
func (p PassPhase) String() string {
	switch p {
	case PhaseStart:
		return "START"
	case PhaseEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// FetchEvent captures one relay event seen by a pass.
type FetchEvent struct {
	// EventID is the nostr event ID (hex).
	EventID string `cbor:"1,keyasint"`

	// Kind is the nostr event kind.
	Kind int `cbor:"2,keyasint"`
}

// DropEvent captures data discarded during parsing.
type DropEvent struct {
	// EventID is the nostr event ID (hex).
	EventID string `cbor:"1,keyasint"`

	// Kind is the nostr event kind.
	Kind int `cbor:"2,keyasint"`

	// Reason classifies the drop.
	Reason DropReason `cbor:"3,keyasint"`

	// Entries is the number of list entries dropped
	// (DropReasonEntries only).
	Entries int `cbor:"4,keyasint,omitempty"`
}

// DropReason classifies why data was discarded.
type DropReason uint8

const (
	// DropReasonMalformed indicates a whole event was discarded because a
	// required field was missing or unparseable.
	DropReasonMalformed DropReason = 0

	// DropReasonEntries indicates individual entries inside a multi-value
	// field were discarded while the event was kept.
	DropReasonEntries DropReason = 1
)

// String returns the drop reason name.
func (r DropReason) String() string {
	switch r {
	case DropReasonMalformed:
		return "MALFORMED_EVENT"
	case DropReasonEntries:
		return "MALFORMED_ENTRIES"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any stage of a pass.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
