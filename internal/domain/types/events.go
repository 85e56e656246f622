package types

// EventKind names a protocol state transition.
type EventKind string

// String returns the string form of the event kind.
func (k EventKind) String() string { return string(k) }

// Event kinds emitted by the core. SessionCreated is emitted on create and
// re-emitted on join with the seller bound; PriceRevealed once per party;
// DealMatched at most once per session.
const (
	EventSessionCreated EventKind = "session_created"
	EventPriceRevealed  EventKind = "price_revealed"
	EventDealMatched    EventKind = "deal_matched"
)

// Event is one append-only log entry. Seq and At are assigned by the log at
// append time, atomically with the state transition that caused the event.
type Event struct {
	Seq     uint64    `json:"seq"`
	Kind    EventKind `json:"kind"`
	Session SessionID `json:"session"`

	// Party is the acting party: the creator or joiner for SessionCreated,
	// the revealer for PriceRevealed. Unused for DealMatched.
	Party PartyID `json:"party,omitempty"`

	// Price carries the revealed clear value for PriceRevealed and the
	// settlement price (the seller's ask) for DealMatched.
	Price Price `json:"price,omitempty"`

	// At is the append time in unix nanoseconds.
	At int64 `json:"at"`
}
