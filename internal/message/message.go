// Package message provides the durable conversation log.
//
// The log is append-only: turns are inserted, never updated, and removed
// only in bulk by Clear. Ordering follows the identity column, which is
// strictly monotonic in insertion order.
package message

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Role identifies who produced a turn.
type Role string

const (
	// RoleUser marks a turn sent by the human.
	RoleUser Role = "user"

	// RoleAssistant marks a turn produced by the model.
	RoleAssistant Role = "assistant"
)

// MaxContentLength is the maximum turn length in characters.
const MaxContentLength = 10000

// Sentinel errors for turn validation.
var (
	// ErrInvalidRole indicates a role outside {user, assistant}.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidContent indicates empty or oversize content.
	ErrInvalidContent = errors.New("invalid content")
)

// Message is one persisted conversation turn.
type Message struct {
	ID        int64     `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidateTurn checks role and content before any store mutation.
// Content length is measured in characters, not bytes.
//
// Assistant turns may be empty: when the model produces no text the empty
// response is still persisted rather than skipped, so the log mirrors what
// the caller was shown.
func ValidateTurn(role Role, content string) error {
	if role != RoleUser && role != RoleAssistant {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if content == "" && role != RoleAssistant {
		return fmt.Errorf("%w: content is empty", ErrInvalidContent)
	}
	if n := utf8.RuneCountInString(content); n > MaxContentLength {
		return fmt.Errorf("%w: %d characters exceeds maximum of %d", ErrInvalidContent, n, MaxContentLength)
	}
	return nil
}
