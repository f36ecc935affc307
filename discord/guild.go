package discord

import (
	"context"
	"fmt"
)

// Guild is one entry from /users/@me/guilds, seen from the authenticated
// user's point of view (owner flag and permission masks are theirs).
type Guild struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Icon           *string  `json:"icon"`
	Banner         *string  `json:"banner"`
	Owner          bool     `json:"owner"`
	Permissions    int64    `json:"permissions"`
	PermissionsNew string   `json:"permissions_new"`
	Features       []string `json:"features"`
}

func (g *Guild) validate() error {
	if g.ID == "" {
		return fmt.Errorf("guild response missing id")
	}
	if g.Name == "" {
		return fmt.Errorf("guild response missing name")
	}
	return nil
}

// Guilds lists the guilds the authenticated user is a member of, in the order
// Discord returns them. Requires the guilds scope.
func (c *Client) Guilds(ctx context.Context) ([]Guild, error) {
	if err := c.requireScope(ScopeGuilds); err != nil {
		return nil, err
	}

	var guilds []Guild
	if err := c.get(ctx, "/users/@me/guilds", &guilds); err != nil {
		return nil, err
	}
	for i := range guilds {
		if err := guilds[i].validate(); err != nil {
			return nil, err
		}
	}
	return guilds, nil
}
