// Package app wires application dependencies for the daemon and the CLI.
//
// NewWire builds the daemon's dependency graph (store, event log,
// coprocessor, negotiation service) from Config; App bundles the HTTP
// clients the CLI commands use.
package app
