package discord

import (
	"context"
	"encoding/json"
	"fmt"
)

// Connection is one entry from /users/@me/connections: a third-party account
// (Steam, YouTube, ...) linked to the Discord user.
type Connection struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Type         string            `json:"type"`
	Revoked      *bool             `json:"revoked"`
	Integrations []json.RawMessage `json:"integrations"`
	Verified     bool              `json:"verified"`
	FriendSync   bool              `json:"friend_sync"`
	ShowActivity bool              `json:"show_activity"`
	TwoWayLink   bool              `json:"two_way_link"`
	Visibility   int               `json:"visibility"`
}

func (c *Connection) validate() error {
	if c.ID == "" {
		return fmt.Errorf("connection response missing id")
	}
	if c.Type == "" {
		return fmt.Errorf("connection response missing type")
	}
	return nil
}

// Connections lists the third-party accounts linked to the authenticated
// user, in the order Discord returns them. Requires the connections scope.
func (c *Client) Connections(ctx context.Context) ([]Connection, error) {
	if err := c.requireScope(ScopeConnections); err != nil {
		return nil, err
	}

	var connections []Connection
	if err := c.get(ctx, "/users/@me/connections", &connections); err != nil {
		return nil, err
	}
	for i := range connections {
		if err := connections[i].validate(); err != nil {
			return nil, err
		}
	}
	return connections, nil
}
