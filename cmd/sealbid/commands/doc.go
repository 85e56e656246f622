// Package commands implements the sealbid CLI: creating and joining
// negotiation sessions, revealing committed prices under proof, and
// inspecting sessions and the event log. All commands talk to a running
// sealbidd over HTTP; prices are sealed by the coprocessor before they
// leave the command.
package commands
