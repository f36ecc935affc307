// Package config loads the demo server's settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config exposes everything the demo server needs from the environment.
type Config interface {
	GetAppName() string
	GetPort() string
	GetEnv() string
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetBotToken() string
	GetCookieSecret() string
}

type envVars struct {
	AppName      string `env:"APP_NAME" envDefault:"Discord OAuth"`
	Port         string `env:"PORT" envDefault:"8080"`
	Env          string `env:"ENV" envDefault:"development"`
	ClientID     string `env:"DISCORD_CLIENT_ID,required"`
	ClientSecret string `env:"DISCORD_CLIENT_SECRET,required"`
	RedirectURI  string `env:"DISCORD_REDIRECT_URI,required"`
	BotToken     string `env:"DISCORD_BOT_TOKEN"`
	CookieSecret string `env:"COOKIE_SECRET,required"`
}

// New parses the environment into a Config.
func New() (Config, error) {
	var vars envVars
	if err := env.Parse(&vars); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &vars, nil
}

var _ Config = (*envVars)(nil)

func (v *envVars) GetAppName() string { return v.AppName }

// GetPort returns the listen address with a leading colon.
func (v *envVars) GetPort() string {
	if strings.HasPrefix(v.Port, ":") {
		return v.Port
	}
	return ":" + v.Port
}

func (v *envVars) GetEnv() string          { return v.Env }
func (v *envVars) GetClientID() string     { return v.ClientID }
func (v *envVars) GetClientSecret() string { return v.ClientSecret }
func (v *envVars) GetRedirectURI() string  { return v.RedirectURI }
func (v *envVars) GetBotToken() string     { return v.BotToken }
func (v *envVars) GetCookieSecret() string { return v.CookieSecret }
