package chat

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrEmptyUtterance is returned when Reply is called with nothing
	// to reply to.
	ErrEmptyUtterance = errors.New("utterance cannot be empty")
)
