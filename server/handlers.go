package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-discord-oauth/discord"
)

// IndexHandler serves the single demo page: a login link while the session is
// invalid, the profile dashboard once it is. It doubles as the OAuth2
// redirect URI, so the callback check has to run before anything is written.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := s.discordClient(w, r)
		if client.HandleCallback(w, r) {
			return
		}

		if !client.Valid() {
			authURL, err := client.AuthCodeURL(
				discord.ScopeIdentify,
				discord.ScopeGuilds,
				discord.ScopeConnections,
				discord.ScopeGuildsJoin,
			)
			if err != nil {
				log.Err(err).Msg("building authorize url")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			renderIndex(w, indexData{AuthURL: authURL})
			return
		}

		profile, err := client.Profile(r.Context())
		if err != nil {
			// token revoked or expired mid-session; start over
			log.Err(err).Msg("fetching profile")
			client.DestroySession()
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		data := indexData{
			Profile:   profile,
			AvatarURL: profile.AvatarURL(true),
			Joined:    r.URL.Query().Get("joined"),
		}
		if data.Guilds, err = client.Guilds(r.Context()); err != nil {
			log.Err(err).Msg("listing guilds")
		}
		if data.Connections, err = client.Connections(r.Context()); err != nil {
			log.Err(err).Msg("listing connections")
		}

		renderIndex(w, data)
	}
}

// JoinGuildHandler adds the authenticated user to the guild named in the
// form, then bounces back to the index with the outcome in the query string.
func (s *Server) JoinGuildHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := s.discordClient(w, r)
		if client.HandleCallback(w, r) {
			return
		}

		guildID := r.FormValue("guild_id")
		if guildID == "" {
			http.Error(w, "Missing guild_id", http.StatusBadRequest)
			return
		}

		result, err := client.AddGuildMember(r.Context(), guildID)
		if err != nil {
			log.Err(err).Str("guild_id", guildID).Msg("adding guild member")
			http.Error(w, "Cannot join guild: "+err.Error(), http.StatusForbidden)
			return
		}

		http.Redirect(w, r, "/?joined="+result.String(), http.StatusSeeOther)
	}
}

// LogoutHandler discards the login and returns to the index.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client := s.discordClient(w, r)
		if client.HandleCallback(w, r) {
			return
		}

		client.DestroySession()
		if id, ok := s.sessionID(r); ok {
			s.sessions.Delete(id)
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
