package discord_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jrsteele09/go-discord-oauth/discord"
	"github.com/jrsteele09/go-discord-oauth/sessions"
	"github.com/stretchr/testify/require"
)

// tokenEndpoint is a fake Discord token endpoint that records how often it
// was called and what form values it received.
type tokenEndpoint struct {
	srv      *httptest.Server
	calls    int
	lastForm url.Values
	response string
}

func newTokenEndpoint(t *testing.T, response string) *tokenEndpoint {
	t.Helper()

	e := &tokenEndpoint{response: response}
	e.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.calls++
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		e.lastForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, e.response)
	}))
	t.Cleanup(e.srv.Close)
	return e
}

const tokenResponseBody = `{"refresh_token":"r1","access_token":"a1","token_type":"Bearer","expires_in":604800,"scope":"identify guilds"}`

func callbackFixture(t *testing.T, endpoint *tokenEndpoint) *testFixture {
	t.Helper()
	return newFixture(
		withEndpoints(discord.Endpoints{TokenURL: endpoint.srv.URL}),
		withHTTPClient(endpoint.srv.Client()),
	)
}

func storedState(t *testing.T, f *testFixture) string {
	t.Helper()
	state, ok := f.store.Get(sessions.KeyState)
	require.True(t, ok)
	return state
}

func TestHandleCallback_Exchange(t *testing.T) {
	endpoint := newTokenEndpoint(t, tokenResponseBody)
	f := callbackFixture(t, endpoint)

	_, err := f.client.AuthCodeURL(discord.ScopeIdentify, discord.ScopeGuilds)
	require.NoError(t, err)
	state := storedState(t, f)

	r := httptest.NewRequest(http.MethodGet, "/?code=abc123&state="+state+"&page=home", nil)
	w := httptest.NewRecorder()

	require.True(t, f.client.HandleCallback(w, r), "a callback request must be terminated")

	require.Equal(t, 1, endpoint.calls)
	require.Equal(t, "authorization_code", endpoint.lastForm.Get("grant_type"))
	require.Equal(t, "abc123", endpoint.lastForm.Get("code"))
	require.Equal(t, testRedirectURI, endpoint.lastForm.Get("redirect_uri"))
	require.Equal(t, testClientID, endpoint.lastForm.Get("client_id"))
	require.Equal(t, testClientSecret, endpoint.lastForm.Get("client_secret"))

	// session populated from the token response
	accessToken, _ := f.store.Get(sessions.KeyAccessToken)
	require.Equal(t, "Bearer a1", accessToken)
	refreshToken, _ := f.store.Get(sessions.KeyRefreshToken)
	require.Equal(t, "r1", refreshToken)
	scope, _ := f.store.Get(sessions.KeyScope)
	require.Equal(t, "identify guilds", scope)

	require.True(t, f.client.Valid())
	f.now = f.now.Add(604801 * time.Second)
	require.False(t, f.client.Valid())

	// cleanup redirect strips code and state, keeps the rest
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/?page=home", w.Header().Get("Location"))
}

func TestHandleCallback_StateMismatch(t *testing.T) {
	endpoint := newTokenEndpoint(t, tokenResponseBody)
	f := callbackFixture(t, endpoint)

	_, err := f.client.AuthCodeURL()
	require.NoError(t, err)

	// pre-existing grant must survive a forged callback untouched
	f.authenticate("identify")
	before, _ := f.store.Get(sessions.KeyAccessToken)

	r := httptest.NewRequest(http.MethodGet, "/?code=abc123&state=forged", nil)
	w := httptest.NewRecorder()

	require.True(t, f.client.HandleCallback(w, r))
	require.Equal(t, 0, endpoint.calls, "mismatched state must not reach the token endpoint")

	after, _ := f.store.Get(sessions.KeyAccessToken)
	require.Equal(t, before, after)

	// the terminating redirect still happens
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
}

func TestHandleCallback_StaleNonceRejected(t *testing.T) {
	endpoint := newTokenEndpoint(t, tokenResponseBody)
	f := callbackFixture(t, endpoint)

	first, err := f.client.AuthCodeURL()
	require.NoError(t, err)
	firstURL, err := url.Parse(first)
	require.NoError(t, err)
	staleState := firstURL.Query().Get("state")

	// second issuance invalidates the first link
	_, err = f.client.AuthCodeURL()
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/?code=abc123&state="+staleState, nil)
	w := httptest.NewRecorder()

	require.True(t, f.client.HandleCallback(w, r))
	require.Equal(t, 0, endpoint.calls)
	require.False(t, f.client.Valid())
}

func TestHandleCallback_NotACallback(t *testing.T) {
	endpoint := newTokenEndpoint(t, tokenResponseBody)

	tests := []struct {
		name   string
		target string
	}{
		{"no params", "/"},
		{"code only", "/?code=abc123"},
		{"state only", "/?state=xyz"},
		{"unrelated params", "/?page=home"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := callbackFixture(t, endpoint)
			_, err := f.client.AuthCodeURL()
			require.NoError(t, err)
			state := storedState(t, f)

			r := httptest.NewRequest(http.MethodGet, tc.target, nil)
			w := httptest.NewRecorder()

			require.False(t, f.client.HandleCallback(w, r))
			require.Equal(t, http.StatusOK, w.Code, "no redirect on the not-a-callback path")
			require.Equal(t, state, storedState(t, f), "session must be untouched")
		})
	}
	require.Equal(t, 0, endpoint.calls)
}

func TestHandleCallback_MalformedTokenResponse(t *testing.T) {
	endpoint := newTokenEndpoint(t, `{}`)
	f := callbackFixture(t, endpoint)

	_, err := f.client.AuthCodeURL()
	require.NoError(t, err)
	state := storedState(t, f)

	r := httptest.NewRequest(http.MethodGet, "/?code=abc123&state="+state, nil)
	w := httptest.NewRecorder()

	// failure is silent: the session simply never becomes valid
	require.True(t, f.client.HandleCallback(w, r))
	require.Equal(t, 1, endpoint.calls)
	require.False(t, f.client.Valid())
	require.False(t, f.store.Has(sessions.KeyAccessToken))
	require.Equal(t, http.StatusFound, w.Code)
}
