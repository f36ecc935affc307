package config_test

import (
	"testing"

	"github.com/jrsteele09/go-discord-oauth/internal/config"
	"github.com/stretchr/testify/require"
)

func setRequiredVars(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_CLIENT_ID", "client-1")
	t.Setenv("DISCORD_CLIENT_SECRET", "secret-1")
	t.Setenv("DISCORD_REDIRECT_URI", "http://localhost:8080/")
	t.Setenv("COOKIE_SECRET", "cookie-secret")
}

func TestNew(t *testing.T) {
	setRequiredVars(t)
	t.Setenv("DISCORD_BOT_TOKEN", "bot-1")
	t.Setenv("PORT", "9090")

	cfg, err := config.New()
	require.NoError(t, err)

	require.Equal(t, "client-1", cfg.GetClientID())
	require.Equal(t, "secret-1", cfg.GetClientSecret())
	require.Equal(t, "http://localhost:8080/", cfg.GetRedirectURI())
	require.Equal(t, "bot-1", cfg.GetBotToken())
	require.Equal(t, ":9090", cfg.GetPort())
	require.Equal(t, "development", cfg.GetEnv())
}

func TestNew_PortAlreadyPrefixed(t *testing.T) {
	setRequiredVars(t)
	t.Setenv("PORT", ":3000")

	cfg, err := config.New()
	require.NoError(t, err)
	require.Equal(t, ":3000", cfg.GetPort())
}

func TestNew_MissingRequired(t *testing.T) {
	t.Setenv("DISCORD_CLIENT_ID", "client-1")

	_, err := config.New()
	require.Error(t, err)
}
