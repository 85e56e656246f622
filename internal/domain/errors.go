package domain

import "errors"

// Protocol error taxonomy. Every operation is all-or-nothing: any of these
// aborts the call with no state mutation and no event emission. None are
// retried by the core; retry is a caller decision.
var (
	// ErrNotFound indicates an unknown session id.
	ErrNotFound = errors.New("sealbid: session not found")

	// ErrAlreadyExists indicates a derived session id collided on create.
	ErrAlreadyExists = errors.New("sealbid: session already exists")

	// ErrAlreadyJoined indicates the seller slot is already bound.
	ErrAlreadyJoined = errors.New("sealbid: session already joined")

	// ErrUnauthorized indicates the caller is not the bound party for the
	// attempted action.
	ErrUnauthorized = errors.New("sealbid: requester is not the bound party")

	// ErrAlreadyRevealed indicates the role has already revealed its price.
	ErrAlreadyRevealed = errors.New("sealbid: price already revealed")

	// ErrInvalidEncryption indicates a ciphertext failed the validity check
	// on ingestion.
	ErrInvalidEncryption = errors.New("sealbid: invalid encrypted price")

	// ErrInvalidProof indicates a decryption proof does not attest the
	// claimed clear value.
	ErrInvalidProof = errors.New("sealbid: invalid decryption proof")
)
