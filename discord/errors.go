package discord

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionInvalid means the session is missing token material or has
	// expired. Recoverable by sending the user through the flow again.
	ErrSessionInvalid = errors.New("invalid oauth2 session")

	// ErrMissingScope is the target ScopeError unwraps to; use errors.As on
	// the returned error to learn which scope was missing.
	ErrMissingScope = errors.New("missing oauth2 scope")

	// ErrMissingBotToken means AddGuildMember was called without a bot token
	// configured. Not recoverable at runtime.
	ErrMissingBotToken = errors.New("bot token not configured")
)

// ScopeError reports a valid session that lacks a required grant.
type ScopeError struct {
	Scope string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("missing oauth2 scope %q", e.Scope)
}

func (e *ScopeError) Unwrap() error { return ErrMissingScope }
