// Package discord implements the client side of Discord's OAuth2
// authorization-code flow together with typed access to a small set of
// Discord REST resources: the user's profile, guild list, connection list
// and bot-assisted guild joining.
//
// A Client keeps no token state of its own; everything lives in the session
// store handed to New, so a Client is cheap to rebuild per request.
package discord

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/jrsteele09/go-discord-oauth/sessions"
)

const (
	defaultAuthURL    = "https://discord.com/oauth2/authorize"
	defaultTokenURL   = "https://discord.com/api/oauth2/token"
	defaultAPIBaseURL = "https://discord.com/api"
)

// Scopes used by the typed API methods.
const (
	ScopeIdentify    = "identify"
	ScopeGuilds      = "guilds"
	ScopeConnections = "connections"
	ScopeGuildsJoin  = "guilds.join"
)

// Endpoints overrides the Discord URLs the client talks to. Zero values fall
// back to the production endpoints; tests point these at httptest servers.
type Endpoints struct {
	AuthURL    string
	TokenURL   string
	APIBaseURL string
}

// Config carries the application credentials issued by the Discord developer
// portal, plus optional overrides.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// BotToken authorizes guild-membership mutations. Optional;
	// AddGuildMember fails with ErrMissingBotToken when unset.
	BotToken string

	Endpoints Endpoints

	// HTTPClient is used for the token exchange and every API call.
	// Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Now is the clock used for session-expiry checks. Defaults to time.Now.
	Now func() time.Time
}

// Client drives one logical login through the authorization-code flow and
// exposes the scope-gated REST calls.
type Client struct {
	cfg     Config
	oauth   *oauth2.Config
	session sessions.Store
	http    *http.Client
	apiBase string
	now     func() time.Time
}

// New creates a client bound to the given session store.
func New(cfg Config, store sessions.Store) *Client {
	endpoints := cfg.Endpoints
	if endpoints.AuthURL == "" {
		endpoints.AuthURL = defaultAuthURL
	}
	if endpoints.TokenURL == "" {
		endpoints.TokenURL = defaultTokenURL
	}
	if endpoints.APIBaseURL == "" {
		endpoints.APIBaseURL = defaultAPIBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint: oauth2.Endpoint{
				AuthURL:   endpoints.AuthURL,
				TokenURL:  endpoints.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		session: store,
		http:    httpClient,
		apiBase: endpoints.APIBaseURL,
		now:     now,
	}
}

// AuthCodeURL builds the Discord authorize URL for the requested scopes and
// stores a fresh state nonce in the session. The identify scope is always
// included exactly once. Issuing a new URL invalidates any previously issued
// one: only the most recent state nonce is redeemable on callback.
func (c *Client) AuthCodeURL(scopes ...string) (string, error) {
	state, err := newStateNonce()
	if err != nil {
		return "", fmt.Errorf("generating state nonce: %w", err)
	}
	c.session.Set(sessions.KeyState, state)

	cfg := *c.oauth
	cfg.Scopes = withIdentify(scopes)
	return cfg.AuthCodeURL(state), nil
}

// newStateNonce returns 32 bytes of crypto-grade randomness, hex encoded.
func newStateNonce() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// withIdentify deduplicates the scope list, preserving first-seen order, and
// appends identify when the caller omitted it.
func withIdentify(scopes []string) []string {
	out := make([]string, 0, len(scopes)+1)
	seen := make(map[string]bool, len(scopes)+1)
	for _, scope := range scopes {
		if scope == "" || seen[scope] {
			continue
		}
		seen[scope] = true
		out = append(out, scope)
	}
	if !seen[ScopeIdentify] {
		out = append(out, ScopeIdentify)
	}
	return out
}
