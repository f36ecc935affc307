package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// MembershipResult is the outcome of AddGuildMember, derived solely from the
// HTTP status of the membership PUT.
type MembershipResult int

const (
	MembershipFailed MembershipResult = iota
	MemberAdded
	AlreadyMember
)

func (r MembershipResult) String() string {
	switch r {
	case MembershipFailed:
		return "Failed"
	case MemberAdded:
		return "MemberAdded"
	case AlreadyMember:
		return "AlreadyMember"
	default:
		return "Unknown"
	}
}

// AddGuildMember joins the authenticated user to the given guild using the
// configured bot credential. Requires the guilds.join scope on the user's
// session and a bot that is already a member of the guild with permission to
// create invites.
//
// The outcome of the PUT is reported by value: 201 means the member was
// added, 204 means they already belonged, and anything else, including a
// transport failure, collapses into MembershipFailed with a nil error.
// Precondition violations (invalid session, missing bot token, missing
// scope) and a failed profile lookup are the only error returns.
func (c *Client) AddGuildMember(ctx context.Context, guildID string) (MembershipResult, error) {
	if !c.Valid() {
		return MembershipFailed, ErrSessionInvalid
	}
	if c.cfg.BotToken == "" {
		return MembershipFailed, ErrMissingBotToken
	}
	if !c.hasScope(ScopeGuildsJoin) {
		return MembershipFailed, &ScopeError{Scope: ScopeGuildsJoin}
	}

	profile, err := c.Profile(ctx)
	if err != nil {
		return MembershipFailed, fmt.Errorf("resolving acting user: %w", err)
	}

	// The membership endpoint wants the bare token, without the scheme the
	// session stores it with.
	body, err := json.Marshal(map[string]string{
		"access_token": strings.TrimPrefix(c.accessToken(), "Bearer "),
	})
	if err != nil {
		return MembershipFailed, fmt.Errorf("encoding membership request: %w", err)
	}

	url := fmt.Sprintf("%s/guilds/%s/members/%s", c.apiBase, guildID, profile.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return MembershipFailed, fmt.Errorf("building membership request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.cfg.BotToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Err(err).Str("guild_id", guildID).Msg("discord: guild member request failed")
		return MembershipFailed, nil
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		return MemberAdded, nil
	case http.StatusNoContent:
		return AlreadyMember, nil
	default:
		return MembershipFailed, nil
	}
}
