// Package types holds the plain data models of the negotiation core:
// identifiers, the Session record, and event log entries. It has no
// behaviour beyond encoding; contracts live in the interfaces package.
package types
