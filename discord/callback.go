package discord

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-discord-oauth/sessions"
)

// HandleCallback completes the authorization-code flow when the incoming
// request carries Discord's callback parameters. It must run at the top of
// request handling, before any response is written: when it returns true it
// has already redirected the browser to the same URL with code and state
// stripped, and the caller must stop processing the request.
//
// Requests without both code and state are not callbacks; they are left
// untouched and false is returned.
//
// A state mismatch or a failed exchange is not surfaced to the caller. The
// session is simply left unpopulated, so the next Valid check fails and the
// user is sent through the flow again.
func (c *Client) HandleCallback(w http.ResponseWriter, r *http.Request) bool {
	query := r.URL.Query()
	if !query.Has("code") || !query.Has("state") {
		return false
	}

	c.exchange(r.Context(), query.Get("code"), query.Get("state"))

	// The redirect runs regardless of how the exchange went, so reloading
	// the cleaned URL can never replay the code.
	query.Del("code")
	query.Del("state")
	cleaned := *r.URL
	cleaned.RawQuery = query.Encode()
	http.Redirect(w, r, cleaned.String(), http.StatusFound)
	return true
}

func (c *Client) exchange(ctx context.Context, code, state string) {
	stored, ok := c.session.Get(sessions.KeyState)
	if !ok || stored != state {
		log.Warn().Msg("discord: state mismatch on oauth2 callback")
		return
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		log.Err(err).Msg("discord: code exchange failed")
		return
	}

	scope, _ := token.Extra("scope").(string)

	// Empty fields stay absent rather than being stored as empty strings, so
	// an incomplete token response produces a session that fails the validity
	// check instead of one that half-works.
	setIfPresent(c.session, sessions.KeyRefreshToken, token.RefreshToken)
	setIfPresent(c.session, sessions.KeyAccessToken, token.Type()+" "+token.AccessToken)
	setIfPresent(c.session, sessions.KeyScope, scope)
	if !token.Expiry.IsZero() {
		c.session.Set(sessions.KeyExpireAt, strconv.FormatInt(token.Expiry.Unix(), 10))
	}
}

func setIfPresent(store sessions.Store, key, value string) {
	if value == "" {
		return
	}
	store.Set(key, value)
}
