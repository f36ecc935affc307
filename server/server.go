// Package server is the demo web app fronting the Discord OAuth2 client: a
// single page that authenticates with Discord, shows the user's profile,
// guilds and connections, and lets them join a guild through the bot.
package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jrsteele09/go-discord-oauth/discord"
	"github.com/jrsteele09/go-discord-oauth/internal/config"
	"github.com/jrsteele09/go-discord-oauth/sessions"
)

const sessionTTL = 24 * time.Hour

// Server routes requests and owns the per-browser session stores.
type Server struct {
	mux        *http.ServeMux
	routes     []string
	config     config.Config
	sessions   *sessions.Manager
	endpoints  discord.Endpoints
	httpClient *http.Client
}

// Option customises a Server; used by tests to point the Discord client at
// fake endpoints.
type Option func(*Server)

func WithDiscordEndpoints(endpoints discord.Endpoints) Option {
	return func(s *Server) { s.endpoints = endpoints }
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *Server) { s.httpClient = client }
}

func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		sessions: sessions.NewManager(sessionTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.initRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET /{$}", ChainMiddleware(s.IndexHandler(), s.LoggingMiddleware, s.RecoverMiddleware))
	s.RegisterRouteFunc("POST /guilds/join", ChainMiddleware(s.JoinGuildHandler(), s.LoggingMiddleware, s.RecoverMiddleware))
	s.RegisterRouteFunc("GET /logout", ChainMiddleware(s.LogoutHandler(), s.LoggingMiddleware, s.RecoverMiddleware))
}

// discordClient builds a per-request client bound to the browser's session
// store, minting a session cookie when the request doesn't carry a valid one.
func (s *Server) discordClient(w http.ResponseWriter, r *http.Request) *discord.Client {
	id, ok := s.sessionID(r)
	if !ok {
		id = uuid.NewString()
		s.setSessionCookie(w, id)
	}

	return discord.New(discord.Config{
		ClientID:     s.config.GetClientID(),
		ClientSecret: s.config.GetClientSecret(),
		RedirectURI:  s.config.GetRedirectURI(),
		BotToken:     s.config.GetBotToken(),
		Endpoints:    s.endpoints,
		HTTPClient:   s.httpClient,
	}, s.sessions.Store(id))
}
