// Package client is the typed HTTP client for the sealbidd API, used by the
// CLI. Server-side protocol failures are surfaced as the domain sentinel
// matching the response status, so callers can branch with errors.Is.
package client
