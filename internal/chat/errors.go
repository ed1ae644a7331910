package chat

import "errors"

// Sentinel errors returned by the chat orchestrator. Callers map these
// onto transport-level responses with errors.Is.
var (
	// ErrInvalidMessage indicates the user message failed input validation
	// (empty or longer than the content limit).
	ErrInvalidMessage = errors.New("invalid chat message")

	// ErrUnknownCharacter indicates the requested persona key is not one of
	// the configured characters.
	ErrUnknownCharacter = errors.New("unknown character")

	// ErrGeneration indicates the model call failed after the user turn was
	// already persisted. The stored conversation keeps the dangling user
	// message; only the assistant turn is missing.
	ErrGeneration = errors.New("response generation failed")
)
