package sessions_test

import (
	"testing"

	"github.com/jrsteele09/go-discord-oauth/sessions"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_SetGet(t *testing.T) {
	store := sessions.NewInMemoryStore()

	_, ok := store.Get(sessions.KeyState)
	require.False(t, ok)
	require.False(t, store.Has(sessions.KeyState))

	store.Set(sessions.KeyState, "nonce-1")
	value, ok := store.Get(sessions.KeyState)
	require.True(t, ok)
	require.Equal(t, "nonce-1", value)
	require.True(t, store.Has(sessions.KeyState))

	store.Set(sessions.KeyState, "nonce-2")
	value, _ = store.Get(sessions.KeyState)
	require.Equal(t, "nonce-2", value)
}

func TestInMemoryStore_Clear(t *testing.T) {
	store := sessions.NewInMemoryStore()
	store.Set(sessions.KeyAccessToken, "Bearer a1")
	store.Set(sessions.KeyRefreshToken, "r1")

	store.Clear()

	require.False(t, store.Has(sessions.KeyAccessToken))
	require.False(t, store.Has(sessions.KeyRefreshToken))

	// Clearing an empty store is a no-op
	store.Clear()
}
