package discord

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const cdnBaseURL = "https://cdn.discordapp.com"

// Profile is the Discord user record returned by /users/@me. Optional fields
// are pointers; nil means Discord omitted or nulled them. A Profile is an
// immutable snapshot, never written back to the session.
type Profile struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	GlobalName    *string `json:"global_name"`
	Avatar        *string `json:"avatar"`
	Discriminator string  `json:"discriminator"`
	PublicFlags   int     `json:"public_flags"`
	Flags         int     `json:"flags"`
	Banner        *string `json:"banner"`
	AccentColor   *int    `json:"accent_color"`
	BannerColor   *string `json:"banner_color"`
	MFAEnabled    bool    `json:"mfa_enabled"`
	Locale        string  `json:"locale"`
	PremiumType   *int    `json:"premium_type"`
	Email         *string `json:"email"`
	Verified      bool    `json:"verified"`
}

func (p *Profile) validate() error {
	if p.ID == "" {
		return fmt.Errorf("profile response missing id")
	}
	if p.Username == "" {
		return fmt.Errorf("profile response missing username")
	}
	return nil
}

// DisplayName prefers the global display name over the legacy username.
func (p *Profile) DisplayName() string {
	if p.GlobalName != nil && *p.GlobalName != "" {
		return *p.GlobalName
	}
	return p.Username
}

// AvatarURL returns the CDN URL for the user's avatar. Users without a custom
// avatar get one of the six default embed avatars, picked deterministically
// from the account id. Animated avatars (hash prefixed "a_") resolve to a gif
// only when allowAnimated is set.
func (p *Profile) AvatarURL(allowAnimated bool) string {
	if p.Avatar == nil {
		id, _ := strconv.ParseUint(p.ID, 10, 64)
		return fmt.Sprintf("%s/embed/avatars/%d.png", cdnBaseURL, (id>>22)%6)
	}

	ext := ".png"
	if allowAnimated && strings.HasPrefix(*p.Avatar, "a_") {
		ext = ".gif"
	}
	return fmt.Sprintf("%s/avatars/%s/%s%s", cdnBaseURL, p.ID, *p.Avatar, ext)
}

// Profile fetches the authenticated user's identity record.
// Requires the identify scope.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	if err := c.requireScope(ScopeIdentify); err != nil {
		return nil, err
	}

	var profile Profile
	if err := c.get(ctx, "/users/@me", &profile); err != nil {
		return nil, err
	}
	if err := profile.validate(); err != nil {
		return nil, err
	}
	return &profile, nil
}
