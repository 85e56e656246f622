// Package match holds the pure protocol logic of the negotiation core: the
// derived reveal state machine and the deterministic deal-matching rule.
// Nothing here touches stores or performs IO.
package match
