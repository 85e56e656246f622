// Package server exposes the negotiation protocol and the demo coprocessor
// over HTTP with JSON bodies. Transport only: every rule lives in the
// negotiation service, and the handlers just map the protocol error
// taxonomy onto status codes (404 NotFound, 409 conflicts, 403
// Unauthorized, 422 failed validation).
package server
