package engine

import "errors"

// Error kinds raised by the engine and its model types. Callers
// discriminate with errors.Is; every failure wraps exactly one of these.
var (
	// ErrValidation covers illegal nominations and malformed placements.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound is raised when a card id is absent from the addressed
	// hand or pile.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState is raised when an action is attempted outside the
	// turn state that permits it.
	ErrInvalidState = errors.New("invalid state transition")
	// ErrEmptyDeck signals a draw from an exhausted deck. Non-fatal:
	// callers may reshuffle the discard pile and retry.
	ErrEmptyDeck = errors.New("deck empty")
)
