// Package domain defines the core data models, error taxonomy, and
// interfaces shared across the negotiation protocol. It contains plain
// types (wire/state) and contracts (interfaces) only.
package domain
