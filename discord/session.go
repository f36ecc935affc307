package discord

import (
	"strconv"
	"strings"

	"github.com/jrsteele09/go-discord-oauth/sessions"
)

// Valid reports whether the session holds a complete, unexpired grant. A
// session missing any of the token fields is treated as absent, never
// partially valid.
func (c *Client) Valid() bool {
	required := []string{
		sessions.KeyRefreshToken,
		sessions.KeyAccessToken,
		sessions.KeyExpireAt,
		sessions.KeyScope,
	}
	for _, key := range required {
		if !c.session.Has(key) {
			return false
		}
	}

	raw, _ := c.session.Get(sessions.KeyExpireAt)
	expireAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false
	}
	return c.now().Unix() <= expireAt
}

// DestroySession discards all session state. Safe to call repeatedly.
func (c *Client) DestroySession() {
	c.session.Clear()
}

func (c *Client) hasScope(scope string) bool {
	if !c.Valid() {
		return false
	}
	granted, _ := c.session.Get(sessions.KeyScope)
	for _, s := range strings.Fields(granted) {
		if s == scope {
			return true
		}
	}
	return false
}

// requireScope enforces the precondition shared by every API call: a valid
// session first, then the named grant.
func (c *Client) requireScope(scope string) error {
	if !c.Valid() {
		return ErrSessionInvalid
	}
	if !c.hasScope(scope) {
		return &ScopeError{Scope: scope}
	}
	return nil
}

// accessToken returns the stored token including its scheme prefix, ready for
// the Authorization header.
func (c *Client) accessToken() string {
	token, _ := c.session.Get(sessions.KeyAccessToken)
	return token
}
