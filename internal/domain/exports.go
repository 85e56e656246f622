package domain

import (
	interfaces "sealbid/internal/domain/interfaces"
	types "sealbid/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SessionID        = types.SessionID
	PartyID          = types.PartyID
	CiphertextHandle = types.CiphertextHandle
	Price            = types.Price
	Session          = types.Session
	Event            = types.Event
	EventKind        = types.EventKind
)

// Event kind re-exports.
const (
	EventSessionCreated = types.EventSessionCreated
	EventPriceRevealed  = types.EventPriceRevealed
	EventDealMatched    = types.EventDealMatched
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SessionStore       = interfaces.SessionStore
	EventSink          = interfaces.EventSink
	Verifier           = interfaces.Verifier
	PriceVault         = interfaces.PriceVault
	NegotiationService = interfaces.NegotiationService
)
