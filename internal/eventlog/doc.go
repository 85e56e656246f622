// Package eventlog provides the ordered, append-only record of protocol
// transitions (SessionCreated, PriceRevealed, DealMatched) that indexers and
// UIs observe. Stores append atomically with the state change that caused
// each event.
package eventlog
