package server

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/go-discord-oauth/discord"
	"github.com/jrsteele09/go-discord-oauth/internal/utils"
)

type indexData struct {
	AuthURL     string
	Profile     *discord.Profile
	AvatarURL   string
	Guilds      []discord.Guild
	Connections []discord.Connection
	Joined      string
}

var indexTemplate = template.Must(template.New("index").Funcs(template.FuncMap{
	"deref": utils.Value[string],
}).Parse(indexHTML))

func renderIndex(w http.ResponseWriter, data indexData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		log.Err(err).Msg("rendering index template")
	}
}

const indexHTML = `<!doctype html>
<html>
<head>
    <title>go-discord-oauth demo</title>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/@picocss/pico@2/css/pico.min.css">
</head>
<body style="height: 100vh; width: 100vw; margin: 0">
<main style="display: flex; flex-direction: column; width: 100%; height: 100%; justify-content: center; align-items: center">
{{if not .Profile}}
    <a href="{{.AuthURL}}" role="button">Authenticate with Discord</a>
{{else}}
    <div style="display: flex; gap: 1rem">
        <img draggable="false" style="border-radius: 50%; user-select: none" src="{{.AvatarURL}}" height="128px">
        <div>
            <p>Hello, {{.Profile.DisplayName}}</p>
            {{with deref .Profile.Email}}<p><small>{{.}}</small></p>{{end}}
            <a href="/logout" role="button">logout</a>
        </div>
    </div>
    {{if .Joined}}
    <p><mark>Join result: {{.Joined}}</mark></p>
    {{end}}
    <form action="/guilds/join" method="post" style="margin-top: 1rem">
        <fieldset role="group">
            <input type="text" name="guild_id" placeholder="Guild ID" required>
            <button type="submit">Join guild</button>
        </fieldset>
    </form>
    {{if .Guilds}}
    <details>
        <summary>Guilds ({{len .Guilds}})</summary>
        <ul>
        {{range .Guilds}}
            <li>{{.Name}}{{if .Owner}} (owner){{end}}</li>
        {{end}}
        </ul>
    </details>
    {{end}}
    {{if .Connections}}
    <details>
        <summary>Connections ({{len .Connections}})</summary>
        <ul>
        {{range .Connections}}
            <li>{{.Type}}: {{.Name}}{{if .Verified}} ✓{{end}}</li>
        {{end}}
        </ul>
    </details>
    {{end}}
{{end}}
</main>
</body>
</html>
`
